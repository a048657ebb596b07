package entity

// Programme is a formation programme as exposed by the CMS. Appointments only
// keep a loose reference (programmeId + title copy) to it.
type Programme struct {
	ID       string `json:"id"`
	Titre    string `json:"titre"`
	Slug     string `json:"slug,omitempty"`
	Duree    string `json:"duree,omitempty"`
	Niveau   string `json:"niveau,omitempty"`
	Objectif string `json:"objectif,omitempty"`
}

// User is the back-office account returned by the CMS on login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}
