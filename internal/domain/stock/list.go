package stock

import "perishables/internal/core/seq"

// List is the record container passed between the reader, the report
// service and the writers.
type List = seq.List[*Record]

// NewList creates an empty record list.
func NewList() *List {
	return seq.New[*Record]()
}
