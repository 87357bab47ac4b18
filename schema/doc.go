// Package schema describes the grammar of X12 transaction sets.
//
// A [Loop] is an ordered list of [Slot]s. Each slot holds one segment
// (Single, Optional), a run of segments (Repeated) or a run of nested loop
// instances (Nested). A [TransactionSet] is a loop whose first slot is ST
// and whose last slot is SE.
//
// Transaction sets are written in a small YAML language:
//
//	id: "315"
//	name: Status Details (Ocean)
//	version: "004010"
//	body:
//	- seg: ST
//	- seg: B4
//	- {seg: N9, req: O, max: 30}
//	- loop: R4
//	  req: O
//	  max: 20
//	  body:
//	  - seg: R4
//	  - {seg: DTM, req: O, max: 15}
//	- seg: SE
//
// req is M (the default) or O, max defaults to 1 and ">1" means unbounded.
// The built-in catalog is registered at init and may be extended with
// [Register].
package schema
