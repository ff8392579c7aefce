package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeBlockOrder(t *testing.T) {
	for i, b := range AllTimeBlocks {
		assert.Equal(t, i, b.Order(), b)
	}
	assert.Equal(t, -1, TimeBlock("6:00 PM").Order())
}

func TestParseEnums(t *testing.T) {
	tests := []struct {
		in   string
		want CallPurpose
		ok   bool
	}{
		{"Complaint", PurposeComplaint, true},
		{" sales support ", PurposeSalesSupport, true},
		{"PRODUCT SUPPORT", PurposeProductSupport, true},
		{"Refund", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCallPurpose(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCallPurpose(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	d, ok := ParseDirection("outgoing")
	assert.True(t, ok)
	assert.Equal(t, DirectionOutgoing, d)

	b, ok := ParseTimeBlock(" 12:00 pm")
	assert.True(t, ok)
	assert.Equal(t, Block12PM, b)

	_, ok = ParseTimeBlock("8:00 AM")
	assert.False(t, ok)
}

func TestRawIsCopied(t *testing.T) {
	fields := []string{"a", "b"}
	r := CallRecord{}.WithRaw(fields)
	fields[0] = "x"

	got := r.Raw()
	assert.Equal(t, []string{"a", "b"}, got)

	got[1] = "y"
	assert.Equal(t, []string{"a", "b"}, r.Raw())
	assert.Nil(t, CallRecord{}.Raw())
}

func TestWithSource(t *testing.T) {
	r := CallRecord{RepID: "Brent"}.WithSource([]string{"Brent"}, "\"Brent\"\r\n")
	assert.Equal(t, "\"Brent\"\r\n", r.Source())
	assert.Equal(t, []string{"Brent"}, r.Raw())
	assert.Equal(t, "Brent", r.RepID)
	assert.Empty(t, CallRecord{}.Source())
}

func TestDatasetHelpers(t *testing.T) {
	var nilSet *Dataset
	assert.Equal(t, 0, nilSet.Len())
	assert.Equal(t, 0, nilSet.NormalizedCount())

	north := &Dataset{Name: BranchNorth, Records: []CallRecord{{RepID: "Brent"}, {RepID: "Cam", Normalized: true}}}
	south := &Dataset{Name: BranchSouth, Records: []CallRecord{{RepID: "Kate"}}}

	assert.Equal(t, 1, north.NormalizedCount())
	all := Combine(north, nil, south)
	assert.Len(t, all, 3)
	assert.Equal(t, "Kate", all[2].RepID)
}

func TestIncomingHelpers(t *testing.T) {
	r := CallRecord{Direction: DirectionIncoming, IncomingWait: Float(3)}
	assert.True(t, r.IsIncoming())
	assert.True(t, r.HasIncomingWait())
	assert.Equal(t, 3.0, *r.IncomingWait)

	out := CallRecord{Direction: DirectionOutgoing}
	assert.False(t, out.IsIncoming())
	assert.False(t, out.HasIncomingWait())
}
