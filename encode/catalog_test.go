package encode

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/parse"
	"github.com/signadot/x12-format/go-x12/segment"
)

// wrap puts one transaction set in a single group interchange and
// closes it with an SE holding the segment count.
func wrap(gs string, set ...string) string {
	b := &strings.Builder{}
	b.WriteString("ISA*00*          *00*          *ZZ*SOURCE         *ZZ*TARGET         *220524*1120*U*00401*000000001*0*P*>~\n")
	fmt.Fprintf(b, "GS*%s*SOURCE*TARGET*20220524*1120*1*X*004010~\n", gs)
	for _, s := range set {
		b.WriteString(s + "~\n")
	}
	fmt.Fprintf(b, "SE*%d*0001~\nGE*1*1~\nIEA*1*000000001~\n", len(set)+1)
	return b.String()
}

// doc310 is an ocean freight invoice as carriers send it: no line breaks
// and trailer control numbers that do not match their headers.
const doc310 = "ISA*00*          *00*          *ZZ*SOURCE         *02*TARGET         *220101*1449*U*00401*000011566*0*P*>~" +
	"GS*IO*SOURCE*TARGET*20220101*1449*61716*X*004010~" +
	"ST*310*35353~" +
	"B3*3*IDENTIFIER123*IDENTIFIER123*MX**20220830*00****WHT*20220830*PP~" +
	"B2A*00*BL~" +
	"N9*BN*1XXX011114*BOOKING NUMBER~" +
	"N9*BM*IDENTIFIER123*BILL OF LADING NUMBER~" +
	"N9*R1*MSK-BL-1.0*INTERNAL GUIDELINE VERSION NUMBER~" +
	"N9*VT*9V8896*VESSEL CALL-SIGN~" +
	"V1*9786774*POLAR ECUADOR*SG*234N****L~" +
	"Y2*1***45G1~" +
	"N1*SH*MADERAS ARAUCO S.A.*25*940924821~N3*EL GOLF 150~N4*LAS CONDES**7550107*CL~" +
	"N1*CN*ARAUCO NORTH AMERICA INC*25*100992847~N3*PERIMETER CENTER TER NE 400~N4*ATLANTA*GA*30346*US~" +
	"N1*N1*GEODIS USA INC*25*12323242~N3*LACROSS RD 4995~N4*NORTH CHARLESTON*SC*29406*US~" +
	"N1*CA*WHATEVER*2*WHT~N3*ESPLANADEN 50~N4*COPENHAGEN K**1098*DK~" +
	"R4*L*UN*CLSVE*SAN VICENTE*CL***BI~DTM*140*20220830*003000*LT~" +
	"R4*D*UN*USBAL*BALTIMORE*US***MD~DTM*140*20220101*120000*LT~" +
	"R4*T*UN*PAMIT*MANZANILLO*PA~DTM*140*20220101*130000*LT~" +
	"C8***WHT CODE: 4411.1400~C8***EMISION SWB.~C8***CHARGE_TYPE-BASIC FREIGHT; PAYER-SHIPPER; TERM-PREPAID;~" +
	"LX*1~" +
	"N7*TCNU*6849731*17007*G*3810*28690**31.32*X*S*CN*****M*K*1****45G1~M7*MLCL0008628~" +
	"L0*1***17007*G*31.32*X*36*PKG**K~" +
	"L5*1*1 X 40'HC 21 PACKAGES WITH 31.320 MCUB AND 16.837*2313432*Z~" +
	"L5*1*NET WEIGHT . MOULDINGS OF MEDIUM DENSITY FIBERBO~" +
	"L5*1*ARD ( MECHANICALLY WORKED (WITH SURFACED COVER ED~" +
	"L5*1*) . REF.INT: 111111 . ALSO CONSIGNEE: ATTN: AW~" +
	"L3*17007*G*******42.42*X*1*K~" +
	"L1*1*3371*FR*316100****COF***P******1*NR~C3*USD~" +
	"L1*2*875*FR*87900****BUA***P******1*NR~C3*USD~" +
	"L1*3*29*FR*2800*******P******1*NR~C3*USD~" +
	"SE*46*32353~GE*1*61916~IEA*1*000061216~"

func TestCatalogDocuments(t *testing.T) {
	tests := []struct {
		id   string
		doc  string
		opts []parse.ParseOption
		at   []string // "path TAG" of some segments of the set
	}{
		{
			id: "204",
			doc: wrap("SM",
				"ST*204*0001",
				"B2**SCAC**SH123**PP",
				"B2A*00",
				"L11*PO123*PO",
				"G62*64*20220601",
				"N1*SH*ACME SHIPPING*93*SH01",
				"N3*1 MAIN ST",
				"N4*MEMPHIS*TN*38103*US",
				"N1*CN*BETA RECEIVING*93*CN01",
				"N4*DALLAS*TX*75201*US",
				"N7**TRLR123456",
				"M7*SEAL1",
				"S5*1*LD",
				"L11*BOL1*BM",
				"G62*69*20220602",
				"N1*SH*ACME SHIPPING",
				"N3*1 MAIN ST",
				"L5*1*FURNITURE",
				"N7**TRLR123456",
				"S5*2*UL",
				"N1*CN*BETA RECEIVING",
				"L3*1000*G",
			),
			at: []string{
				"$.l11[0] L11",
				"$.g62 G62",
				"$.loop_0100[1].n4 N4",
				"$.loop_0200[0].n7 N7",
				"$.loop_0200[0].m7[0] M7",
				"$.loop_0300[0].l11[0] L11",
				"$.loop_0300[0].g62[0] G62",
				"$.loop_0300[0].loop_0310[0].n1 N1",
				"$.loop_0300[0].loop_0310[0].n3[0] N3",
				"$.loop_0300[0].loop_0320[0].l5 L5",
				"$.loop_0300[0].loop_0380[0].n7 N7",
				"$.loop_0300[1].s5 S5",
				"$.loop_0300[1].loop_0310[0].n1 N1",
				"$.l3 L3",
			},
		},
		{
			id: "214",
			doc: wrap("QM",
				"ST*214*0001",
				"B10*PRO123*SHIP456*SCAC",
				"L11*REF1*BM",
				"N1*SH*ACME SHIPPING",
				"N4*MEMPHIS*TN*38103*US",
				"LX*1",
				"AT7*X6*NS***20220601*1200*LT",
				"MS1*MEMPHIS*TN*US",
				"L11*BOL1*BM",
				"CD3*LB*1200",
				"N1*CN*BETA RECEIVING",
				"N3*9 ELM ST",
				"PRF*PO123",
				"N1*BT*GAMMA BILLING",
				"CD3*LB*800",
				"AT7*AF*NS***20220602*0900*LT",
				"MS2*SCAC*TRLR1",
				"MAN*GM*MARK1",
				"LX*2",
				"AT7*D1*NS***20220603*1000*LT",
			),
			at: []string{
				"$.b10 B10",
				"$.l11[0] L11",
				"$.loop_0100[0].n4 N4",
				"$.loop_0200[0].lx LX",
				"$.loop_0200[0].loop_0205[0].ms1 MS1",
				"$.loop_0200[0].l11[0] L11",
				"$.loop_0200[0].loop_0210[0].cd3 CD3",
				"$.loop_0200[0].loop_0210[0].loop_0220[0].n3[0] N3",
				"$.loop_0200[0].loop_0230[0].loop_0231[0].n1 N1",
				"$.loop_0200[0].loop_0230[0].loop_0233[0].cd3 CD3",
				"$.loop_0200[0].loop_0230[0].loop_0233[0].loop_0240[0].at7 AT7",
				"$.loop_0200[0].loop_0230[0].loop_0233[0].loop_0240[0].ms2 MS2",
				"$.loop_0200[0].loop_0230[0].loop_0233[0].man[0] MAN",
				"$.loop_0200[1].loop_0205[0].at7 AT7",
			},
		},
		{
			id: "301",
			doc: wrap("RO",
				"ST*301*0001",
				"B1*MSCU*BKG456*20220524*A",
				"Y3*BKG456*MSCU*20220601*20220615",
				"Y4*BKG456**20220601*1*45G1",
				"W09*CN*-1*FA",
				"N9*BN*BKG456",
				"N1*SH*ACME SHIPPING",
				"N3*1 MAIN ST",
				"R4*L*UN*CNSHA*SHANGHAI*CN",
				"DTM*139*20220601",
				"R4*D*UN*USLAX*LOS ANGELES*US",
				"W09*CN*-2*FA",
				"LX*1",
				"N7**1234567",
				"W09*CN*-3*FA",
				"H1*1234*3",
				"V1*9123456*MSC ANNA",
			),
			at: []string{
				"$.y3 Y3",
				"$.loop_y4[0].w09 W09",
				"$.n9[0] N9",
				"$.loop_n1[0].n3 N3",
				"$.loop_r4[0].dtm[0] DTM",
				"$.loop_r4[1].r4 R4",
				"$.w09 W09",
				"$.loop_lx[0].n7 N7",
				"$.loop_lx[0].w09 W09",
				"$.loop_lx[0].loop_h1[0].h1 H1",
				"$.v1[0] V1",
			},
		},
		{
			id: "309",
			doc: wrap("SO",
				"ST*309*0001",
				"M10*SCAC*O*US*MSC ANNA*123A*CN*1*20220601",
				"P4*2704*20220615*1",
				"LX*1",
				"M13*SCAC*2704*A*BOL123",
				"N9*BM*BOL123",
				"N1*SH*ACME SHIPPING",
				"N3*1 MAIN ST",
				"N1*CN*BETA RECEIVING",
				"M12*00*123456789",
				"VID*CN*MSCU*1234567",
				"N10*10*FURNITURE",
				"H1*1234*3",
				"H2*FLAMMABLE",
				"N10*5*CHAIRS",
				"LX*2",
				"N9*BM*BOL124",
				"P4*2709*20220616*1",
				"LX*1",
			),
			at: []string{
				"$.m10 M10",
				"$.loop_p4[0].loop_lx[0].m13 M13",
				"$.loop_p4[0].loop_lx[0].n9[0] N9",
				"$.loop_p4[0].loop_lx[0].loop_n1[0].n3[0] N3",
				"$.loop_p4[0].loop_lx[0].loop_n1[1].n1 N1",
				"$.loop_p4[0].loop_lx[0].loop_m12[0].m12 M12",
				"$.loop_p4[0].loop_lx[0].loop_vid[0].loop_n10[0].loop_h1[0].h2[0] H2",
				"$.loop_p4[0].loop_lx[0].loop_vid[0].loop_n10[1].n10 N10",
				"$.loop_p4[0].loop_lx[1].n9[0] N9",
				"$.loop_p4[1].loop_lx[0].lx LX",
			},
		},
		{
			id:   "310",
			doc:  doc310,
			opts: []parse.ParseOption{parse.LenientControlNumbers()},
			at: []string{
				"$.b3 B3",
				"$.b2a B2A",
				"$.n9[3] N9",
				"$.v1[0] V1",
				"$.y2[0] Y2",
				"$.loop_n1[3].n4 N4",
				"$.loop_r4[2].dtm[0] DTM",
				"$.loop_c8[2].c8 C8",
				"$.loop_lx[0].loop_n7[0].m7[0] M7",
				"$.loop_lx[0].loop_l0[0].l0 L0",
				"$.loop_lx[0].loop_l0[0].l5[3] L5",
				"$.l3 L3",
				"$.loop_l1[2].c3 C3",
			},
		},
		{
			id: "322",
			doc: wrap("SO",
				"ST*322*0001",
				"Q5*A*20220601*1200*USLAX**CT*MEMPHIS",
				"N7*MSCU*1234567",
				"DTM*140*20220601*1200",
				"W2*MSCU*1234567*GM*L",
				"R4*L*UN*USLAX*LOS ANGELES*US",
				"DTM*139*20220601",
				"N1*SH*ACME SHIPPING",
				"N9*BM*BOL123",
				"N7*MSCU*7654321",
				"DTM*140*20220602*0800",
			),
			at: []string{
				"$.q5 Q5",
				"$.loop_n7[0].dtm[0] DTM",
				"$.loop_n7[0].w2 W2",
				"$.loop_n7[0].loop_r4[0].dtm[0] DTM",
				"$.loop_n7[0].loop_n1[0].n1 N1",
				"$.loop_n7[0].n9[0] N9",
				"$.loop_n7[1].dtm[0] DTM",
			},
		},
		{
			id: "404",
			doc: wrap("SR",
				"ST*404*0001",
				"M3*B",
				"N9*BM*BOL123",
				"N7*TTX*123456",
				"VC*FORD*CAR1",
				"N1*SH*ACME SHIPPING",
				"N4*MEMPHIS*TN",
				"M7*SEAL1",
				"REF*BM*BOL123",
				"N1*CN*BETA RECEIVING",
				"N7*TTX*654321",
				"F9*123*MEMPHIS*TN**DALLAS*TX",
				"D9**DALLAS*TX",
				"N1*SH*ACME SHIPPING",
				"REF*BM*BOL123",
				"N1*CN*BETA RECEIVING",
				"LX*1",
				"L5*1*AUTOMOBILES",
				"L5*2*PARTS",
				"L0*1***1000*G",
			),
			at: []string{
				"$.m3 M3",
				"$.n9[0] N9",
				"$.loop_n7[0].loop_vc[0].loop_n1[0].n4 N4",
				"$.loop_n7[0].m7[0] M7",
				"$.loop_n7[0].loop_ref[0].ref REF",
				"$.loop_n7[0].loop_ref[0].loop_n1[0].n1 N1",
				"$.loop_n7[1].n7 N7",
				"$.f9 F9",
				"$.d9 D9",
				"$.loop_n1[0].ref[0] REF",
				"$.loop_n1[1].n1 N1",
				"$.loop_lx[0].l5[1] L5",
				"$.loop_lx[0].loop_l0[0].l0 L0",
			},
		},
		{
			id:  "998",
			doc: wrap("SC", "ST*998*0001", "ZD*01"),
			at:  []string{"$.zd ZD"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			tr, err := parse.Parse([]byte(tc.doc), tc.opts...)
			if err != nil {
				t.Fatal(err)
			}
			sets := tr.Sets()
			if len(sets) != 1 {
				t.Fatalf("got %d sets", len(sets))
			}
			set := sets[0]
			if id := ir.SetID(set); id != tc.id {
				t.Fatalf("got set %s", id)
			}
			want := map[string]string{}
			for _, a := range tc.at {
				path, tag, _ := strings.Cut(a, " ")
				want[path] = tag
			}
			got := map[string]string{}
			n := 0
			err = set.Walk(func(s *segment.Segment, p ir.Path) error {
				n++
				if _, ok := want[p.String()]; ok {
					got[p.String()] = s.Tag
				}
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("placement (-want +got):\n%s", diff)
			}
			if se := set.Segment("se").Value(1); se != strconv.Itoa(n) {
				t.Errorf("walked %d segments, SE01 is %s", n, se)
			}

			buf := bytes.NewBuffer(nil)
			if err := Encode(tr, buf); err != nil {
				t.Fatal(err)
			}
			if out := buf.String(); out != tc.doc {
				t.Fatalf("got\n%s\nwant\n%s", out, tc.doc)
			}
		})
	}
}
