package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("Shop.Box", "description", "bad tag", cause)

		assert.Contains(t, err.Error(), "enki: schema error")
		assert.Contains(t, err.Error(), "type Shop.Box")
		assert.Contains(t, err.Error(), "feature description")
		assert.Contains(t, err.Error(), "bad tag")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with type only", func(t *testing.T) {
		err := &SchemaError{Type: "Shop.Box"}
		assert.Contains(t, err.Error(), "type Shop.Box")
		assert.NotContains(t, err.Error(), "feature")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("Shop.Box", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("Shop.Box", "", "", nil)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsSchemaError(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestAssociationError(t *testing.T) {
	t.Run("Error message with both ends", func(t *testing.T) {
		err := NewAssociationError("Shop.Contains", "box", "items", "circular")
		assert.Equal(t, "enki: association error on Shop.Contains (box -> items): circular", err.Error())
	})

	t.Run("Error message with from only", func(t *testing.T) {
		err := NewAssociationError("Shop.Contains", "Shop.Box", "", "circular")
		assert.Equal(t, "enki: association error on Shop.Contains from Shop.Box: circular", err.Error())
	})

	t.Run("Is matches ErrInvalidAssociation", func(t *testing.T) {
		err := NewAssociationError("A", "", "", "")
		assert.True(t, errors.Is(err, ErrInvalidAssociation))
		assert.False(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsAssociationError(err))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("IdentifierLimit", -1, "must not be negative")

		assert.Contains(t, err.Error(), "enki: config error")
		assert.Contains(t, err.Error(), "IdentifierLimit")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "must not be negative")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Initializer", nil, "missing initializer class name")

		assert.Contains(t, err.Error(), "Initializer")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestDialectError(t *testing.T) {
	cause := errors.New("no conversion")
	err := NewDialectError("oracle", "cannot render views", cause)

	assert.Equal(t, "enki: dialect error for oracle: cannot render views: no conversion", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedDialect))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsDialectError(err))
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewGenerationError("PASS_2_EMITTING_CLASSES", "mapping.hbm.xml", "emit failed", errors.New("boom"))
		assert.Equal(t,
			"enki: generation error in phase PASS_2_EMITTING_CLASSES (file: mapping.hbm.xml): emit failed: boom",
			err.Error(),
		)
	})

	t.Run("Wrapped errors stay matchable", func(t *testing.T) {
		cause := NewAssociationError("Shop.Self", "Shop.Node", "", "circular")
		err := NewGenerationError("PASS_1_COLLECTING", "", "", cause)

		require.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, errors.Is(err, ErrInvalidAssociation))
		assert.True(t, IsAssociationError(err))
		assert.True(t, IsGenerationError(err))
	})
}
