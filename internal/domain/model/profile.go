package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexInt decodes a JSON number or a numeric string. The judge site is not
// consistent about how it encodes uids.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// User is the identity block of a judge profile.
type User struct {
	UID                   FlexInt `json:"uid"`
	Name                  string  `json:"name"`
	Badge                 *string `json:"badge"`
	Color                 string  `json:"color"`
	Avatar                string  `json:"avatar"`
	Background            string  `json:"background"`
	Slogan                string  `json:"slogan"`
	FollowingCount        int     `json:"followingCount"`
	FollowerCount         int     `json:"followerCount"`
	PassedProblemCount    int     `json:"passedProblemCount"`
	SubmittedProblemCount int     `json:"submittedProblemCount"`
}

// EloEntry is one rated-contest standing; the first entry is current.
type EloEntry struct {
	Rating int `json:"rating"`
}

// Prize is one award row. The inner prize field is the award level text.
type Prize struct {
	Year    int    `json:"year"`
	Contest string `json:"contest"`
	Level   string `json:"prize"`
}

// PrizeEntry wraps a prize the way the profile payload nests it.
type PrizeEntry struct {
	Prize Prize `json:"prize"`
}

// PassedProblem is one solved problem from the practice detail.
type PassedProblem struct {
	Difficulty int `json:"difficulty"`
}

// ProfileData is the payload inside the profile envelope. Passed starts empty
// and is merged in from the practice detail fetch.
type ProfileData struct {
	User        User             `json:"user"`
	Elo         []EloEntry       `json:"elo"`
	Prizes      []PrizeEntry     `json:"prizes"`
	DailyCounts map[string][]int `json:"dailyCounts"` // date -> [count, heat]
	Passed      []PassedProblem  `json:"passed"`
}

// Profile is the judge user document.
type Profile struct {
	Data ProfileData `json:"data"`
}

// PracticeData carries the solved-problem list of the practice endpoint.
type PracticeData struct {
	Passed []PassedProblem `json:"passed"`
}

// Practice is the practice-detail document.
type Practice struct {
	Data PracticeData `json:"data"`
}

// SearchUser is one hit of the user search endpoint.
type SearchUser struct {
	UID  FlexInt `json:"uid"`
	Name string  `json:"name"`
}

// SearchResult is the user search document.
type SearchResult struct {
	Users []SearchUser `json:"users"`
}

// MarshalJSON keeps FlexInt numeric on the wire.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}
