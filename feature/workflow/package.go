package workflow

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"atlan-sdk/feature/assets"
)

const (
	labelPrefix    = "orchestration.atlan.com/"
	packageNameKey = "package.argoproj.io/name"

	credentialPlaceholder = "{{credentialGuid}}"
	entrypoint            = "main"
)

// packageInfo describes a crawler package.
type packageInfo struct {
	name      string // npm-style, e.g. @atlan/snowflake
	prefix    string // template name, e.g. atlan-snowflake
	connector assets.ConnectorType
	title     string
}

// labelSafe encodes a package name for use as a label value.
func labelSafe(s string) string {
	return strings.NewReplacer("@", "a-t-r", "/", "s-l-a-s-h", ":", "c-o-l-o-n").Replace(s)
}

// ConnectionSpec describes the connection a crawler creates.
type ConnectionSpec struct {
	Name        string `validate:"required"`
	AdminRoles  []string
	AdminGroups []string
	AdminUsers  []string
	// AllowQuery and AllowQueryPreview enable querying the crawled assets.
	AllowQuery        bool
	AllowQueryPreview bool
	RowLimit          int64 `validate:"gte=0"`
}

func (s ConnectionSpec) build(connector assets.ConnectorType) (*assets.Connection, error) {
	if err := checkStruct("connection", s); err != nil {
		return nil, err
	}
	conn, err := assets.NewConnection(s.Name, connector, s.AdminRoles, s.AdminGroups, s.AdminUsers)
	if err != nil {
		return nil, err
	}
	conn.Attributes.AllowQuery = assets.Ptr(s.AllowQuery)
	conn.Attributes.AllowQueryPreview = assets.Ptr(s.AllowQueryPreview)
	if s.RowLimit > 0 {
		conn.Attributes.RowLimit = assets.Ptr(s.RowLimit)
	}
	return conn, nil
}

// assemble builds the workflow of a package run. params are appended after
// the credential and connection parameters every crawler takes.
func assemble(pkg packageInfo, conn *assets.Connection, cred Credential, params []Parameter) (*Workflow, error) {
	connQN := assets.QualifiedNameOf(conn)
	epoch, err := strconv.ParseInt(connQN[strings.LastIndex(connQN, "/")+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("connection %s has no epoch: %w", connQN, err)
	}
	slug := strings.ReplaceAll(connQN, "/", "-")

	cred.Name = slug + "-0"
	cred.ConnectorConfigName = "atlan-connectors-" + string(pkg.connector)
	if err := checkStruct("credential", cred); err != nil {
		return nil, err
	}
	connJSON, err := assets.Marshal(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to encode connection: %w", err)
	}

	name := pkg.prefix + "-" + strconv.FormatInt(epoch, 10)
	args := append([]Parameter{
		{Name: "credential-guid", Value: credentialPlaceholder},
		{Name: "connection", Value: string(connJSON)},
	}, params...)

	return &Workflow{
		Metadata: Metadata{
			Name: name,
			Labels: map[string]string{
				labelPrefix + "certified":       "true",
				labelPrefix + "source":          string(pkg.connector),
				labelPrefix + "sourceCategory":  string(pkg.connector.Category()),
				labelPrefix + "type":            "connector",
				labelPrefix + "verified":        "true",
				labelPrefix + slug:              "true",
				"package.argoproj.io/installer": "argopm",
				packageNameKey:                  labelSafe(pkg.name),
				"package.argoproj.io/registry":  labelSafe("https://packages.atlan.com"),
			},
			Annotations: map[string]string{
				labelPrefix + "allowSchedule": "true",
				labelPrefix + "categories":    string(pkg.connector.Category()) + ",crawler",
				labelPrefix + "name":          pkg.title,
				labelPrefix + "atlanName":     pkg.prefix + "-" + slug,
				packageNameKey:                pkg.name,
				"package.argoproj.io/author":  "Atlan",
			},
		},
		Spec: Spec{
			Entrypoint: entrypoint,
			Templates: []Template{{
				Name: entrypoint,
				DAG: DAG{Tasks: []Task{{
					Name:        "run",
					Arguments:   Arguments{Parameters: args},
					TemplateRef: TemplateRef{Name: pkg.prefix, Template: entrypoint, ClusterScope: true},
				}}},
			}},
		},
		Payload: []PackageParameter{{
			Parameter: "credentialGuid",
			Type:      "credential",
			Body:      cred.body(),
		}},
	}, nil
}

// filterParams adds include and exclude filter parameters.
func filterParams(params []Parameter, include, exclude map[string][]string) ([]Parameter, error) {
	inc, err := hierarchicalFilter(include)
	if err != nil {
		return nil, err
	}
	exc, err := hierarchicalFilter(exclude)
	if err != nil {
		return nil, err
	}
	return append(params,
		Parameter{Name: "include-filter", Value: inc},
		Parameter{Name: "exclude-filter", Value: exc},
	), nil
}

func boolParam(name string, v bool) Parameter {
	return Parameter{Name: name, Value: strconv.FormatBool(v)}
}

var errNoCredential = errors.New("a credential is required")

// checkAuth rejects missing or unsupported credentials.
func checkAuth(c Credential, allowed ...string) error {
	if c.AuthType == "" {
		return errNoCredential
	}
	if !slices.Contains(allowed, c.AuthType) {
		return fmt.Errorf("authentication %q is not supported, use one of %s", c.AuthType, strings.Join(allowed, ", "))
	}
	return nil
}

// withExtra returns a copy of extra with kv added.
func withExtra(extra map[string]any, kv map[string]any) map[string]any {
	out := make(map[string]any, len(extra)+len(kv))
	maps.Copy(out, extra)
	maps.Copy(out, kv)
	return out
}
