package models

import (
	"time"
)

// KPIs indicateurs principaux du dashboard
type KPIs struct {
	NouveauxLeads  int64 `json:"nouveauxLeads"`
	TauxConversion int64 `json:"tauxConversion"`
	ClientsActifs  int64 `json:"clientsActifs"`
	LeadsNRP       int64 `json:"leadsNRP"`
}

// SourceCount répartition des leads par source
type SourceCount struct {
	Source Source     `json:"source"`
	Nombre int64      `json:"nombre"`
	Date   *time.Time `json:"date,omitempty"`
}

// Dashboard réponse complète du dashboard
type Dashboard struct {
	KPIs              KPIs                     `json:"kpis"`
	TachesDuJour      []TacheWithContact       `json:"tachesDuJour"`
	LeadsParSource    []SourceCount            `json:"leadsParSource"`
	ActiviteRecente   []InteractionWithContact `json:"activiteRecente"`
	RecommandationsIA string                   `json:"recommendationsIA"`
}

// ContactStats statistiques du listing de contacts
type ContactStats struct {
	NouveauxLeads     int64         `json:"nouveauxLeads"`
	TauxConversion    int64         `json:"tauxConversion"`
	ClientsActifs     int64         `json:"clientsActifs"`
	LeadsNRP          int64         `json:"leadsNRP"`
	RepartitionSource []SourceCount `json:"repartitionSource"`
}
