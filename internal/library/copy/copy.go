// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package copy implements the leaf level of the library hierarchy.
//
// A copy is a physically owned instance of an issue. Everything beyond its
// identity is nullable acquisition and condition metadata lifted from the
// CLZ export, so two copies of the same issue are always allowed.
package copy

import (
	"strconv"

	"github.com/longboxhq/longbox/pkg/pagination"
	"github.com/longboxhq/longbox/pkg/patch"
)

// Attributes holds the optional metadata shared by stored copies and
// creation payloads.
type Attributes struct {
	ClzComicID         *int64   `json:"clz_comic_id"`
	CustomLabel        *string  `json:"custom_label"`
	Format             *string  `json:"format"`
	Grade              *string  `json:"grade"`
	GraderNotes        *string  `json:"grader_notes"`
	GradingCompany     *string  `json:"grading_company"`
	RawSlabbed         *string  `json:"raw_slabbed"`
	SignedBy           *string  `json:"signed_by"`
	SlabCertNumber     *string  `json:"slab_cert_number"`
	PurchaseDate       *string  `json:"purchase_date"`
	PurchasePrice      *float64 `json:"purchase_price"`
	PurchaseStore      *string  `json:"purchase_store"`
	PurchaseYear       *int64   `json:"purchase_year"`
	DateSold           *string  `json:"date_sold"`
	PriceSold          *float64 `json:"price_sold"`
	SoldYear           *int64   `json:"sold_year"`
	MyValue            *float64 `json:"my_value"`
	CovrPriceValue     *float64 `json:"covrprice_value"`
	Value              *float64 `json:"value"`
	Country            *string  `json:"country"`
	Language           *string  `json:"language"`
	Age                *string  `json:"age"`
	Barcode            *string  `json:"barcode"`
	CoverPrice         *float64 `json:"cover_price"`
	PageQuality        *string  `json:"page_quality"`
	KeyFlag            *string  `json:"key_flag"`
	KeyCategory        *string  `json:"key_category"`
	KeyReason          *string  `json:"key_reason"`
	LabelType          *string  `json:"label_type"`
	NoOfPages          *int64   `json:"no_of_pages"`
	VariantDescription *string  `json:"variant_description"`
}

// Copy represents a stored copy of an issue.
type Copy struct {
	CopyID  int64 `json:"copy_id"`
	IssueID int64 `json:"issue_id"`
	Attributes
}

// CreateRequest is the payload accepted when creating a copy. Every field
// is optional; an empty body records a bare owned copy.
type CreateRequest struct {
	Attributes
}

// Patch is the sparse update payload for a copy.
type Patch struct {
	ClzComicID         patch.Field[int64]   `json:"clz_comic_id"`
	CustomLabel        patch.Field[string]  `json:"custom_label"`
	Format             patch.Field[string]  `json:"format"`
	Grade              patch.Field[string]  `json:"grade"`
	GraderNotes        patch.Field[string]  `json:"grader_notes"`
	GradingCompany     patch.Field[string]  `json:"grading_company"`
	RawSlabbed         patch.Field[string]  `json:"raw_slabbed"`
	SignedBy           patch.Field[string]  `json:"signed_by"`
	SlabCertNumber     patch.Field[string]  `json:"slab_cert_number"`
	PurchaseDate       patch.Field[string]  `json:"purchase_date"`
	PurchasePrice      patch.Field[float64] `json:"purchase_price"`
	PurchaseStore      patch.Field[string]  `json:"purchase_store"`
	PurchaseYear       patch.Field[int64]   `json:"purchase_year"`
	DateSold           patch.Field[string]  `json:"date_sold"`
	PriceSold          patch.Field[float64] `json:"price_sold"`
	SoldYear           patch.Field[int64]   `json:"sold_year"`
	MyValue            patch.Field[float64] `json:"my_value"`
	CovrPriceValue     patch.Field[float64] `json:"covrprice_value"`
	Value              patch.Field[float64] `json:"value"`
	Country            patch.Field[string]  `json:"country"`
	Language           patch.Field[string]  `json:"language"`
	Age                patch.Field[string]  `json:"age"`
	Barcode            patch.Field[string]  `json:"barcode"`
	CoverPrice         patch.Field[float64] `json:"cover_price"`
	PageQuality        patch.Field[string]  `json:"page_quality"`
	KeyFlag            patch.Field[string]  `json:"key_flag"`
	KeyCategory        patch.Field[string]  `json:"key_category"`
	KeyReason          patch.Field[string]  `json:"key_reason"`
	LabelType          patch.Field[string]  `json:"label_type"`
	NoOfPages          patch.Field[int64]   `json:"no_of_pages"`
	VariantDescription patch.Field[string]  `json:"variant_description"`
}

func (p *Patch) stringFields() []patch.Field[string] {
	return []patch.Field[string]{
		p.CustomLabel, p.Format, p.Grade, p.GraderNotes, p.GradingCompany,
		p.RawSlabbed, p.SignedBy, p.SlabCertNumber, p.PurchaseDate,
		p.PurchaseStore, p.DateSold, p.Country, p.Language, p.Age,
		p.Barcode, p.PageQuality, p.KeyFlag, p.KeyCategory, p.KeyReason,
		p.LabelType, p.VariantDescription,
	}
}

func (p *Patch) intFields() []patch.Field[int64] {
	return []patch.Field[int64]{p.ClzComicID, p.PurchaseYear, p.SoldYear, p.NoOfPages}
}

func (p *Patch) floatFields() []patch.Field[float64] {
	return []patch.Field[float64]{
		p.PurchasePrice, p.PriceSold, p.MyValue, p.CovrPriceValue, p.Value,
		p.CoverPrice,
	}
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	for _, f := range p.stringFields() {
		if f.IsSet() {
			return false
		}
	}
	for _, f := range p.intFields() {
		if f.IsSet() {
			return false
		}
	}
	for _, f := range p.floatFields() {
		if f.IsSet() {
			return false
		}
	}
	return true
}

// Fingerprint binds page tokens to the parent issue. Copy listings carry no
// filters beyond the parent.
func Fingerprint(issueID int64) string {
	return pagination.Fingerprint("copies", strconv.FormatInt(issueID, 10))
}

// CursorKeys returns the sort-key tuple of c for cursor encoding. Copy
// listings order by copy_id alone.
func CursorKeys(c *Copy) []string {
	return []string{strconv.FormatInt(c.CopyID, 10)}
}
