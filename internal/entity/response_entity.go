package entity

type SaveStatus string

const (
	SaveStatusIdle   SaveStatus = "idle"
	SaveStatusSaving SaveStatus = "saving"
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusError  SaveStatus = "error"
)

type Answer struct {
	Value      string
	Attachment *AttachmentDescriptor
}

func (a Answer) Answered() bool {
	return a.Value != "" || a.Attachment != nil
}

// ResponseRecord maps question ids to their answers. Owned exclusively by the
// response store; everything handed out is a copy.
type ResponseRecord map[string]Answer

func (r ResponseRecord) Clone() ResponseRecord {
	out := make(ResponseRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r ResponseRecord) Values() map[string]string {
	out := make(map[string]string, len(r))
	for k, v := range r {
		out[k] = v.Value
	}
	return out
}
