package segment

// ISA is the interchange header. Its fields have fixed widths on the wire.
type ISA struct {
	AuthQualifier      string `x12:"01"`
	AuthInfo           string `x12:"02,width=10"`
	SecurityQualifier  string `x12:"03"`
	SecurityInfo       string `x12:"04,width=10"`
	SenderQualifier    string `x12:"05"`
	SenderID           string `x12:"06,width=15"`
	ReceiverQualifier  string `x12:"07"`
	ReceiverID         string `x12:"08,width=15"`
	Date               string `x12:"09"`
	Time               string `x12:"10"`
	StandardsID        string `x12:"11"`
	Version            string `x12:"12"`
	ControlNumber      string `x12:"13"`
	AckRequested       string `x12:"14"`
	Usage              string `x12:"15"`
	ComponentSeparator string `x12:"16"`
}

// GS is the functional group header.
type GS struct {
	FunctionalID  string `x12:"01"`
	Sender        string `x12:"02"`
	Receiver      string `x12:"03"`
	Date          string `x12:"04"`
	Time          string `x12:"05"`
	ControlNumber string `x12:"06"`
	Agency        string `x12:"07"`
	Version       string `x12:"08"`
}

type ST struct {
	ID            string `x12:"01"`
	ControlNumber string `x12:"02"`
}

type SE struct {
	Count         int    `x12:"01"`
	ControlNumber string `x12:"02"`
}

type GE struct {
	Count         int    `x12:"01"`
	ControlNumber string `x12:"02"`
}

type IEA struct {
	Count         int    `x12:"01"`
	ControlNumber string `x12:"02"`
}
