// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package schema

// CopyTable represents the 'copies' table.
type CopyTable struct {
	Table              string
	CopyID             string
	IssueID            string
	ClzComicID         string
	CustomLabel        string
	Format             string
	Grade              string
	GraderNotes        string
	GradingCompany     string
	RawSlabbed         string
	SignedBy           string
	SlabCertNumber     string
	PurchaseDate       string
	PurchasePrice      string
	PurchaseStore      string
	PurchaseYear       string
	DateSold           string
	PriceSold          string
	SoldYear           string
	MyValue            string
	CovrPriceValue     string
	Value              string
	Country            string
	Language           string
	Age                string
	Barcode            string
	CoverPrice         string
	PageQuality        string
	KeyFlag            string
	KeyCategory        string
	KeyReason          string
	LabelType          string
	NoOfPages          string
	VariantDescription string
}

// Copy is the schema definition for the copies table. All attribute columns
// are nullable acquisition/condition metadata; only the identifier and the
// parent issue reference are mandatory.
var Copy = CopyTable{
	Table:              "copies",
	CopyID:             "copy_id",
	IssueID:            "issue_id",
	ClzComicID:         "clz_comic_id",
	CustomLabel:        "custom_label",
	Format:             "format",
	Grade:              "grade",
	GraderNotes:        "grader_notes",
	GradingCompany:     "grading_company",
	RawSlabbed:         "raw_slabbed",
	SignedBy:           "signed_by",
	SlabCertNumber:     "slab_cert_number",
	PurchaseDate:       "purchase_date",
	PurchasePrice:      "purchase_price",
	PurchaseStore:      "purchase_store",
	PurchaseYear:       "purchase_year",
	DateSold:           "date_sold",
	PriceSold:          "price_sold",
	SoldYear:           "sold_year",
	MyValue:            "my_value",
	CovrPriceValue:     "covrprice_value",
	Value:              "value",
	Country:            "country",
	Language:           "language",
	Age:                "age",
	Barcode:            "barcode",
	CoverPrice:         "cover_price",
	PageQuality:        "page_quality",
	KeyFlag:            "key_flag",
	KeyCategory:        "key_category",
	KeyReason:          "key_reason",
	LabelType:          "label_type",
	NoOfPages:          "no_of_pages",
	VariantDescription: "variant_description",
}

func (t CopyTable) Columns() []string {
	return []string{
		t.CopyID, t.IssueID, t.ClzComicID, t.CustomLabel, t.Format, t.Grade,
		t.GraderNotes, t.GradingCompany, t.RawSlabbed, t.SignedBy,
		t.SlabCertNumber, t.PurchaseDate, t.PurchasePrice, t.PurchaseStore,
		t.PurchaseYear, t.DateSold, t.PriceSold, t.SoldYear, t.MyValue,
		t.CovrPriceValue, t.Value, t.Country, t.Language, t.Age, t.Barcode,
		t.CoverPrice, t.PageQuality, t.KeyFlag, t.KeyCategory, t.KeyReason,
		t.LabelType, t.NoOfPages, t.VariantDescription,
	}
}
