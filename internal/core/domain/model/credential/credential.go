// Package credential models the provider credential template an order is bound to.
// Templates are managed outside of the order lifecycle; the core only reads them.
package credential

import (
	"errors"
	"fmt"
	"strings"

	"activation/internal/pkg/errs"
)

var ErrCredentialIsNotConstructed = errors.New("Credential must be created via NewCredential constructor")

// Credential is the immutable tuple used to rent numbers from the provider:
// an API token plus the country/operator/product triple. The display fields
// are shown on the activation page and never sent to the provider.
type Credential struct {
	id                 int64
	templateName       string
	token              string
	country            string
	operator           string
	product            string
	countryDisplayName string
	countryAreaCode    string

	isConstructed bool
}

// Display holds the optional presentation fields of a template.
type Display struct {
	CountryDisplayName string
	CountryAreaCode    string
}

func NewCredential(
	id int64,
	templateName, token, country, operator, product string,
	display Display,
) (*Credential, error) {
	c := &Credential{
		templateName:       strings.TrimSpace(templateName),
		countryDisplayName: strings.TrimSpace(display.CountryDisplayName),
		countryAreaCode:    strings.TrimSpace(display.CountryAreaCode),
		isConstructed:      true,
	}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	c.id = id

	if err := errors.Join(
		idErr,
		required("token", token, &c.token),
		required("country", country, &c.country),
		required("operator", operator, &c.operator),
		required("product", product, &c.product),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func required(name, value string, dst *string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func (c *Credential) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCredentialIsNotConstructed
	}
	return nil
}

func (c *Credential) ID() int64                  { return c.id }
func (c *Credential) TemplateName() string       { return c.templateName }
func (c *Credential) Token() string              { return c.token }
func (c *Credential) Country() string            { return c.country }
func (c *Credential) Operator() string           { return c.operator }
func (c *Credential) Product() string            { return c.product }
func (c *Credential) CountryDisplayName() string { return c.countryDisplayName }
func (c *Credential) CountryAreaCode() string    { return c.countryAreaCode }

// String never includes the token.
func (c *Credential) String() string {
	return fmt.Sprintf("credential %d (%s/%s/%s)", c.id, c.country, c.operator, c.product)
}
