package loader

// Column names of the call log schema
const (
	ColBranch         = "Branch"
	ColPurpose        = "Call Purpose"
	ColTimeBlock      = "Time Block"
	ColDirection      = "Incoming or Outgoing"
	ColQueue          = "Queue"
	ColRepID          = "Rep ID"
	ColSale           = "Sale"
	ColLostCall       = "Lost Call"
	ColAbandoned      = "Abandoned"
	ColBusyMinutes    = "Busy Minutes"
	ColNotReady       = "Not Ready Minutes"
	ColIncomingWait   = "Incoming Wait Time"
	ColDuringCallWait = "During Call Wait Time"
	ColCalls          = "Calls"
)

// RequiredColumns must all be present in a file header
var RequiredColumns = []string{
	ColPurpose,
	ColTimeBlock,
	ColDirection,
	ColQueue,
	ColRepID,
	ColSale,
	ColAbandoned,
	ColBusyMinutes,
	ColNotReady,
	ColIncomingWait,
	ColDuringCallWait,
	ColCalls,
}

// DefaultHeader is written for datasets that were not read from a file
var DefaultHeader = []string{
	ColBranch,
	ColPurpose,
	ColTimeBlock,
	ColDirection,
	ColQueue,
	ColRepID,
	ColSale,
	ColLostCall,
	ColAbandoned,
	ColBusyMinutes,
	ColNotReady,
	ColIncomingWait,
	ColDuringCallWait,
	ColCalls,
}

// columnIndex maps a trimmed column name to its position in the header
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = trimHeader(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

// get returns the field for column, or "" and false when the column is absent
func (c columnIndex) get(fields []string, column string) (string, bool) {
	i, ok := c[column]
	if !ok || i >= len(fields) {
		return "", false
	}
	return fields[i], true
}
