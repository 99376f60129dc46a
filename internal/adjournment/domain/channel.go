package domain

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// Channel is the resolved hearing channel. The concrete types below are the
// only implementations.
type Channel interface {
	Key() string
	Description() string
	channel()
}

type (
	FaceToFace struct{}
	Video      struct{}
	Telephone  struct{}
	Paper      struct{}
)

func (FaceToFace) Key() string { return "INTER" }
func (Video) Key() string      { return "VID" }
func (Telephone) Key() string  { return "TEL" }
func (Paper) Key() string      { return "ONPPRS" }

func (FaceToFace) Description() string { return "face to face hearing" }
func (Video) Description() string      { return "video hearing" }
func (Telephone) Description() string  { return "telephone hearing" }
func (Paper) Description() string      { return "decision on the papers" }

func (FaceToFace) channel() {}
func (Video) channel()      {}
func (Telephone) channel()  {}
func (Paper) channel()      {}

var channels = []struct {
	hearingType caserecord.NextHearingType
	channel     Channel
}{
	{caserecord.NextHearingFaceToFace, FaceToFace{}},
	{caserecord.NextHearingVideo, Video{}},
	{caserecord.NextHearingTelephone, Telephone{}},
	{caserecord.NextHearingPaper, Paper{}},
}

// ParseChannel matches the next hearing type, or a channel key, case
// insensitively. An unknown value is an invariant violation.
func ParseChannel(t caserecord.NextHearingType) (Channel, error) {
	v := strings.TrimSpace(string(t))
	for _, c := range channels {
		if strings.EqualFold(v, string(c.hearingType)) || strings.EqualFold(v, c.channel.Key()) {
			return c.channel, nil
		}
	}
	return nil, invariant(CodeUnknownChannel, fmt.Sprintf("next hearing type %q has no hearing channel", t))
}
