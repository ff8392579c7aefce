package types

import "strings"

// CallPurpose represents the tagged reason for a call
type CallPurpose string

const (
	PurposeComplaint      CallPurpose = "Complaint"
	PurposeSalesSupport   CallPurpose = "Sales Support"
	PurposeProductSupport CallPurpose = "Product Support"
)

// AllPurposes lists the call purposes in reporting order
var AllPurposes = []CallPurpose{
	PurposeComplaint,
	PurposeSalesSupport,
	PurposeProductSupport,
}

// Direction represents whether a call was incoming or outgoing
type Direction string

const (
	DirectionIncoming Direction = "Incoming"
	DirectionOutgoing Direction = "Outgoing"
)

// AllDirections lists both call directions
var AllDirections = []Direction{DirectionIncoming, DirectionOutgoing}

// TimeBlock is one of the nine hourly labels calls are tagged with
type TimeBlock string

const (
	Block9AM  TimeBlock = "9:00 AM"
	Block10AM TimeBlock = "10:00 AM"
	Block11AM TimeBlock = "11:00 AM"
	Block12PM TimeBlock = "12:00 PM"
	Block1PM  TimeBlock = "1:00 PM"
	Block2PM  TimeBlock = "2:00 PM"
	Block3PM  TimeBlock = "3:00 PM"
	Block4PM  TimeBlock = "4:00 PM"
	Block5PM  TimeBlock = "5:00 PM"
)

// AllTimeBlocks lists the time blocks in day order (9 AM -> 5 PM)
var AllTimeBlocks = []TimeBlock{
	Block9AM, Block10AM, Block11AM, Block12PM,
	Block1PM, Block2PM, Block3PM, Block4PM, Block5PM,
}

// timeBlockOrder maps each block to its position in the day
var timeBlockOrder = func() map[TimeBlock]int {
	m := make(map[TimeBlock]int, len(AllTimeBlocks))
	for i, b := range AllTimeBlocks {
		m[b] = i
	}
	return m
}()

// Order returns the block's position in the day, or -1 for unknown labels
func (b TimeBlock) Order() int {
	if i, ok := timeBlockOrder[b]; ok {
		return i
	}
	return -1
}

// ParseCallPurpose matches s against the known purposes, ignoring case and
// surrounding whitespace
func ParseCallPurpose(s string) (CallPurpose, bool) {
	s = strings.TrimSpace(s)
	for _, p := range AllPurposes {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// ParseDirection matches s against Incoming/Outgoing
func ParseDirection(s string) (Direction, bool) {
	s = strings.TrimSpace(s)
	for _, d := range AllDirections {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// ParseTimeBlock matches s against the nine fixed labels
func ParseTimeBlock(s string) (TimeBlock, bool) {
	s = strings.TrimSpace(s)
	for _, b := range AllTimeBlocks {
		if strings.EqualFold(s, string(b)) {
			return b, true
		}
	}
	return "", false
}

// Branch names used when a file does not carry its own Branch column
const (
	BranchNorth = "North"
	BranchSouth = "South"
)
