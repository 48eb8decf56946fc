package load

// Model represents a declarative entity definition that was loaded from a
// model file.
type Model struct {
	Name          string          `json:"name" yaml:"name" validate:"required"`
	Properties    []*Property     `json:"properties" yaml:"properties" validate:"required,dive,required"`
	Relationships []*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty" validate:"omitempty,dive,required"`
	Operations    []*Operation    `json:"operations,omitempty" yaml:"operations,omitempty" validate:"omitempty,dive,required"`
}

// Property is a scalar field of a model.
type Property struct {
	Name        string        `json:"name" yaml:"name" validate:"required"`
	Type        string        `json:"type" yaml:"type" validate:"required,oneof=Int Float String Boolean ID DateTime"`
	List        bool          `json:"list,omitempty" yaml:"list,omitempty"`
	Required    *bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Unique      bool          `json:"unique,omitempty" yaml:"unique,omitempty"`
	Permissions []*Permission `json:"permissions,omitempty" yaml:"permissions,omitempty" validate:"omitempty,dive,required"`
}

// Relationship is a field of a model that references another model (or a
// scalar). Relationships are resolved after all models were added.
type Relationship struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Type     string `json:"type" yaml:"type" validate:"required"`
	List     bool   `json:"list,omitempty" yaml:"list,omitempty"`
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty"`
}

// Operation describes one API operation on a model.
//
// Type holds the operation kind as written in the model file. Both the
// lowercase spelling used by model files ("show") and the canonical one
// ("Show") are accepted.
type Operation struct {
	Name        string        `json:"name" yaml:"name" validate:"required"`
	Type        string        `json:"type" yaml:"type" validate:"required,oneof=show list create update remove Show List Create Update Remove"`
	Arguments   []*Argument   `json:"arguments,omitempty" yaml:"arguments,omitempty" validate:"omitempty,dive,required"`
	Permissions []*Permission `json:"permissions,omitempty" yaml:"permissions,omitempty" validate:"omitempty,dive,required"`
}

// Argument is an input field of an operation.
type Argument struct {
	Name       string       `json:"name" yaml:"name" validate:"required"`
	Type       string       `json:"type" yaml:"type" validate:"required,oneof=Int Float String Boolean ID DateTime"`
	List       bool         `json:"list,omitempty" yaml:"list,omitempty"`
	Required   *bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Validators []*Validator `json:"validators,omitempty" yaml:"validators,omitempty" validate:"omitempty,dive,required"`
}

// Validator attaches a named constraint to an argument. The shape of
// Properties depends on Type.
type Validator struct {
	Type       string         `json:"type" yaml:"type" validate:"required"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Permission is advisory authorization metadata. It is carried through
// loading but never interpreted by the compiler.
type Permission struct {
	Role string `json:"role" yaml:"role" validate:"required"`
	Type string `json:"type" yaml:"type" validate:"required,oneof=allow deny"`
}

// IsRequired reports whether the property is non-null. An omitted
// required flag means required.
func (p *Property) IsRequired() bool { return isRequired(p.Required) }

// IsRequired reports whether the relationship is non-null.
func (r *Relationship) IsRequired() bool { return isRequired(r.Required) }

// IsRequired reports whether the argument is non-null.
func (a *Argument) IsRequired() bool { return isRequired(a.Required) }

// Bool returns a pointer to b. It is a helper for building models in code,
// where the required flag must be set explicitly.
func Bool(b bool) *bool { return &b }

func isRequired(b *bool) bool {
	return b == nil || *b
}
