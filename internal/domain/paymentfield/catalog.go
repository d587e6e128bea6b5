package paymentfield

import (
	"fmt"
)

// Catalog is the linked graph of payment fields and the fields configured
// on each project location.
type Catalog struct {
	Fields         map[string]*PaymentField
	LocationFields map[string][]string
}

// NewCatalog validates definitions and resolves references by ID.
// Reference cycles are left in place; evaluation rejects them.
func NewCatalog(defs []Definition, locationFields map[string][]string) (*Catalog, error) {
	c := &Catalog{
		Fields:         make(map[string]*PaymentField, len(defs)),
		LocationFields: make(map[string][]string, len(locationFields)),
	}

	for i := range defs {
		field, err := defs[i].ToEntity()
		if err != nil {
			return nil, err
		}
		if _, exists := c.Fields[field.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidPaymentField, field.ID)
		}
		c.Fields[field.ID] = field
	}

	for _, def := range defs {
		field := c.Fields[def.ID]
		refs, err := c.resolve(def.ID, def.PercentageOf)
		if err != nil {
			return nil, err
		}
		field.PercentageOf = refs

		refs, err = c.resolve(def.ID, def.MinValueOf)
		if err != nil {
			return nil, err
		}
		field.MinValueOf = refs
	}

	for locationID, ids := range locationFields {
		for _, id := range ids {
			if _, ok := c.Fields[id]; !ok {
				return nil, fmt.Errorf("%w: %s configured on project location %s", ErrPaymentFieldNotFound, id, locationID)
			}
		}
		c.LocationFields[locationID] = append([]string(nil), ids...)
	}

	return c, nil
}

func (c *Catalog) resolve(ownerID string, ids []string) ([]*PaymentField, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	refs := make([]*PaymentField, 0, len(ids))
	for _, id := range ids {
		ref, ok := c.Fields[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s referenced by %s", ErrPaymentFieldNotFound, id, ownerID)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Get returns the field with the given ID.
func (c *Catalog) Get(id string) (*PaymentField, error) {
	field, ok := c.Fields[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPaymentFieldNotFound, id)
	}
	return field, nil
}

// ForLocation returns the fields configured on a project location in
// configuration order.
func (c *Catalog) ForLocation(locationID string) []*PaymentField {
	ids := c.LocationFields[locationID]
	fields := make([]*PaymentField, 0, len(ids))
	for _, id := range ids {
		fields = append(fields, c.Fields[id])
	}
	return fields
}
