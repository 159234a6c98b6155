package fields

// Glossary and term fields.
var (
	GlossaryTerms        = register(NewRelationField("terms"))
	TermAnchor           = register(NewRelationField("anchor"))
	TermAssignedEntities = register(NewRelationField("assignedEntities"))
	Abbreviation         = register(NewKeywordField("abbreviation", "abbreviation"))
)
