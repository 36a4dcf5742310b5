package plan

// Demo returns the walkthrough queries run by "fieldq demo", in display
// order: projections, time ranges, text prefixes, then membership.
func Demo() []Plan {
	return []Plan{
		{Name: "person-names", Record: "person", Field: "Name", Kind: KindProject},
		{Name: "document-issued", Record: "document", Field: "IssuedBy", Kind: KindProject},
		{Name: "people-born-1981-1994", Record: "person", Field: "Dob", Kind: KindRange,
			Lower: "1980-12-31", Upper: "1995-01-01"},
		{Name: "documents-issued-1981-2004", Record: "document", Field: "IssuedBy", Kind: KindRange,
			Lower: "1980-12-31", Upper: "2005-01-01"},
		{Name: "people-named-jo", Record: "person", Field: "Name", Kind: KindPrefix, Value: "Jo"},
		{Name: "documents-titled-ma", Record: "document", Field: "Title", Kind: KindPrefix, Value: "Ma"},
		{Name: "recipes-with-eggs", Record: "recipe", Field: "Ingredients", Kind: KindContains, Value: "eggs"},
	}
}
