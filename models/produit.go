package models

import (
	"time"
)

// Produit représente un produit d'assurance du catalogue.
// Donnée de référence, gérée indépendamment des contacts.
type Produit struct {
	ID          string `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	NomProduit  string `json:"nom_produit" gorm:"column:nom_produit;not null"`
	Categorie   string `json:"categorie" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (Produit) TableName() string {
	return "produits"
}

// ContratClient représente un contrat souscrit par un contact sur un produit
type ContratClient struct {
	ID               string     `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	ContactID        string     `json:"contact_id" gorm:"column:contact_id;not null"`
	Contact          *Contact   `json:"-" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	ProduitID        string     `json:"produit_id" gorm:"column:produit_id;not null"`
	Produit          Produit    `json:"produit" gorm:"foreignKey:ProduitID"`
	DateSouscription *time.Time `json:"date_souscription" gorm:"column:date_souscription"`
	PrimeAnnuelle    float64    `json:"prime_annuelle" gorm:"column:prime_annuelle;type:decimal(10,2)"`
}

func (ContratClient) TableName() string {
	return "contrats_clients"
}
