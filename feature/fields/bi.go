package fields

// Tableau fields.
var (
	SiteQualifiedName     = register(NewKeywordField("siteQualifiedName", "siteQualifiedName"))
	ProjectQualifiedName  = register(NewKeywordField("projectQualifiedName", "projectQualifiedName"))
	WorkbookQualifiedName = register(NewKeywordField("workbookQualifiedName", "workbookQualifiedName"))
	DashboardWorkbook     = register(NewRelationField("workbook"))
	DashboardWorksheets   = register(NewRelationField("worksheets"))
)
