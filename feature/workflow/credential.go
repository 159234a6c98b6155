package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Authentication types.
const (
	AuthBasic               = "basic"
	AuthKeyPair             = "keypair"
	AuthServiceAccount      = "serviceaccount"
	AuthPersonalAccessToken = "personal_access_token"
)

// Credential is what a crawler authenticates with. It is stored by the
// service before the workflow runs and never returned afterwards.
type Credential struct {
	Name                string         `json:"name"`
	AuthType            string         `json:"authType" validate:"required,oneof=basic keypair serviceaccount personal_access_token"`
	Host                string         `json:"host" validate:"required"`
	Port                int            `json:"port" validate:"required,gt=0,lt=65536"`
	Username            string         `json:"username,omitempty" validate:"required_unless=AuthType serviceaccount"`
	Password            string         `json:"password,omitempty" validate:"required_if=AuthType basic,required_if=AuthType personal_access_token"`
	Extra               map[string]any `json:"extra,omitempty"`
	ConnectorConfigName string         `json:"connectorConfigName" validate:"required"`
}

// BasicAuth returns a username and password credential.
func BasicAuth(username, password string) Credential {
	return Credential{AuthType: AuthBasic, Username: username, Password: password}
}

// KeyPairAuth returns a credential that signs in with a private key.
func KeyPairAuth(username, privateKey, passphrase string) Credential {
	extra := map[string]any{"private_key": privateKey}
	if passphrase != "" {
		extra["private_key_password"] = passphrase
	}
	return Credential{AuthType: AuthKeyPair, Username: username, Extra: extra}
}

// ServiceAccountAuth returns a cloud service account credential.
func ServiceAccountAuth(projectID, serviceAccountJSON, serviceAccountEmail string) Credential {
	return Credential{AuthType: AuthServiceAccount, Username: serviceAccountEmail, Password: serviceAccountJSON,
		Extra: map[string]any{"project_id": projectID}}
}

// PersonalAccessTokenAuth returns a named token credential.
func PersonalAccessTokenAuth(tokenName, token string) Credential {
	return Credential{AuthType: AuthPersonalAccessToken, Username: tokenName, Password: token}
}

func (c Credential) body() map[string]any {
	b := map[string]any{
		"name":                c.Name,
		"authType":            c.AuthType,
		"host":                c.Host,
		"port":                c.Port,
		"connectorConfigName": c.ConnectorConfigName,
	}
	if c.Username != "" {
		b["username"] = c.Username
	}
	if c.Password != "" {
		b["password"] = c.Password
	}
	extra := make(map[string]any, len(c.Extra))
	for k, v := range c.Extra {
		extra[k] = v
	}
	b["extra"] = extra
	return b
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs struct tag validation and lists failures by field.
func checkStruct(what string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: %w", what, err)
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid %s: %s", what, strings.Join(msgs, ", "))
}
