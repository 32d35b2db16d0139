package staging

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Action is the operator-selected transformation for one image.
type Action string

const (
	ActionFurnish Action = "furnish"
	ActionEmpty   Action = "empty"
	ActionNone    Action = "none"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionFurnish, ActionEmpty, ActionNone:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Status is the per-item pipeline state: pending -> processing -> done|error.
type Status string

const (
	StatusUnset      Status = ""
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Badge is what the result viewer shows for the displayed image.
type Badge string

const (
	BadgeProcessing Badge = "processing"
	BadgeError      Badge = "error"
	BadgeStaging    Badge = "virtual_staging"
	BadgeCleanup    Badge = "cleanup"
	BadgeOriginal   Badge = "original"
)

type Payload struct {
	Data     []byte
	MimeType string
}

func (p Payload) DataURL() string {
	mimeType := p.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(p.Data))
}

// Extension returns the file extension used for downloads.
func (p Payload) Extension() string {
	switch strings.ToLower(p.MimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// Input is one accepted image before it is added to a workspace.
type Input struct {
	Name    string
	Payload Payload
	Sample  bool
}

// Image is one entry of the workspace list. Original never changes after
// intake; Action, Status and Result are the only mutable fields.
type Image struct {
	ID       string
	Name     string
	Original Payload
	Sample   bool
	Action   Action
	Status   Status
	Result   *Payload
}

// Shown is the payload the viewer displays: the result when present,
// otherwise the original.
func (img Image) Shown() Payload {
	if img.Result != nil {
		return *img.Result
	}
	return img.Original
}

func (img Image) Badge() Badge {
	switch img.Status {
	case StatusProcessing:
		return BadgeProcessing
	case StatusError:
		return BadgeError
	case StatusUnset, StatusPending, StatusDone:
	}

	switch img.Action {
	case ActionFurnish:
		return BadgeStaging
	case ActionEmpty:
		return BadgeCleanup
	case ActionNone:
		return BadgeOriginal
	}
	return BadgeOriginal
}
