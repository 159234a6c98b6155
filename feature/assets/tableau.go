package assets

import (
	"errors"
	"fmt"
)

// TableauDashboardAttributes are the attributes of a TableauDashboard.
type TableauDashboardAttributes struct {
	AssetAttributes
	SiteQualifiedName            *string      `json:"siteQualifiedName,omitempty"`
	ProjectQualifiedName         *string      `json:"projectQualifiedName,omitempty"`
	TopLevelProjectQualifiedName *string      `json:"topLevelProjectQualifiedName,omitempty"`
	WorkbookQualifiedName        *string      `json:"workbookQualifiedName,omitempty"`
	ProjectHierarchy             []any        `json:"projectHierarchy,omitempty"`
	Workbook                     *Reference   `json:"workbook,omitempty"`
	Worksheets                   []*Reference `json:"worksheets,omitempty"`
}

// TableauDashboard is a dashboard within a Tableau workbook.
type TableauDashboard struct {
	Entity
	Attributes TableauDashboardAttributes
}

// NewTableauDashboard builds a dashboard under a workbook whose qualified
// name has the form <connection>/<site>/<project...>/<workbook>.
func NewTableauDashboard(name, workbookQualifiedName string) (*TableauDashboard, error) {
	if name == "" || workbookQualifiedName == "" {
		return nil, errors.New("dashboard name and workbook qualified name are required")
	}
	site := prefix(workbookQualifiedName, 4)
	if ConnectionOf(workbookQualifiedName) == "" || site == "" || site == workbookQualifiedName {
		return nil, fmt.Errorf("%q is not a workbook qualified name", workbookQualifiedName)
	}
	project := ParentOf(workbookQualifiedName)
	if project == site {
		return nil, fmt.Errorf("workbook %q has no project", workbookQualifiedName)
	}
	d := TableauDashboardUpdater(workbookQualifiedName+"/"+name, name)
	stampConnection(&d.Attributes.AssetAttributes, workbookQualifiedName)
	d.Attributes.SiteQualifiedName = Ptr(site)
	d.Attributes.ProjectQualifiedName = Ptr(project)
	d.Attributes.TopLevelProjectQualifiedName = Ptr(prefix(workbookQualifiedName, 5))
	d.Attributes.WorkbookQualifiedName = Ptr(workbookQualifiedName)
	d.Attributes.Workbook = RefByQualifiedName(TypeTableauWorkbook, workbookQualifiedName)
	return d, nil
}

// TableauDashboardUpdater returns the minimal dashboard needed to update one.
func TableauDashboardUpdater(qualifiedName, name string) *TableauDashboard {
	d := &TableauDashboard{Entity: Entity{TypeName: TypeTableauDashboard}}
	d.Attributes.QualifiedName = Ptr(qualifiedName)
	d.Attributes.Name = Ptr(name)
	return d
}

func (d *TableauDashboard) Common() *AssetAttributes { return &d.Attributes.AssetAttributes }
func (d *TableauDashboard) AttributeSet() any        { return &d.Attributes }

func (d *TableauDashboard) MarshalJSON() ([]byte, error) {
	return marshalEntity(&d.Entity, &d.Attributes)
}

func (d *TableauDashboard) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &d.Entity, &d.Attributes)
	return err
}
