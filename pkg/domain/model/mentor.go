package model

// MentorWorkload is the per-mentor breakdown returned by the backend
type MentorWorkload struct {
	MentorName string `json:"mentor_name"`
	Total      int    `json:"Total Students"`
	High       int    `json:"High Risk"`
	Medium     int    `json:"Medium Risk"`
	Low        int    `json:"Low Risk"`
}
