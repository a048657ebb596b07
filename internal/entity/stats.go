package entity

type RendezVousFilters struct {
	Statut      string `json:"statut,omitempty"` // "all" or "" = no filter
	Type        string `json:"type,omitempty"`
	Lieu        string `json:"lieu,omitempty"`
	ProgrammeID string `json:"programmeId,omitempty"`
	DateDebut   string `json:"dateDebut,omitempty"` // inclusive, YYYY-MM-DD
	DateFin     string `json:"dateFin,omitempty"`   // inclusive, YYYY-MM-DD
	Search      string `json:"search,omitempty"`
}

type RendezVousStats struct {
	Total        int `json:"total"`
	EnAttente    int `json:"enAttente"`
	Confirmes    int `json:"confirmes"`
	Annules      int `json:"annules"`
	Termines     int `json:"termines"`
	Reportes     int `json:"reportes"`
	AujourdHui   int `json:"aujourdhui"`
	CetteSemaine int `json:"cetteSemaine"`
	CeMois       int `json:"ceMois"`
}

// StatusSum adds every per-status counter. Always equal to Total.
func (s RendezVousStats) StatusSum() int {
	return s.EnAttente + s.Confirmes + s.Annules + s.Termines + s.Reportes
}
