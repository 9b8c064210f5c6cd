package entity

// ReasonAll is the aggregate bucket incremented by every vote. It is not a
// reason a visitor can pick.
const ReasonAll = "all"

type Reason struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
