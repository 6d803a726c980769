package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "bool", TypeBool.String())
	assert.Equal(t, "int64", TypeInt64.String())
	assert.Equal(t, "uuid", TypeUUID.String())
	assert.Equal(t, "invalid", TypeInvalid.String())
	assert.Equal(t, "invalid", Type(200).String())
}

func TestTypeValid(t *testing.T) {
	assert.False(t, TypeInvalid.Valid())
	assert.True(t, TypeBool.Valid())
	assert.True(t, TypeJSON.Valid())
	assert.False(t, Type(200).Valid())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"bool", TypeBool},
		{"BOOLEAN", TypeBool},
		{"int", TypeInt},
		{"serial", TypeInt},
		{"bigint", TypeInt64},
		{"bigserial", TypeInt64},
		{"double precision", TypeFloat64},
		{"numeric", TypeFloat64},
		{"text", TypeString},
		{"varchar", TypeString},
		{"timestamptz", TypeTime},
		{"date", TypeTime},
		{"uuid", TypeUUID},
		{"bytea", TypeBytes},
		{"jsonb", TypeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseType("geometry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column type")
}

func TestBuilderChain(t *testing.T) {
	d := String("email").NotNull().Comment("login address").Descriptor()
	assert.Equal(t, "email", d.Name)
	assert.Equal(t, TypeString, d.Type)
	assert.True(t, d.NotNull)
	assert.False(t, d.PrimaryKey)
	assert.False(t, d.HasDefault)
	assert.Equal(t, "login address", d.Comment)
}

func TestBuilderPrimaryKeyImpliesNotNull(t *testing.T) {
	d := Int64("id").PrimaryKey().Descriptor()
	assert.True(t, d.PrimaryKey)
	assert.True(t, d.NotNull)
}

func TestBuilderDefaults(t *testing.T) {
	d := Bool("active").Default(true).Descriptor()
	assert.True(t, d.HasDefault)
	assert.Equal(t, true, d.Default)
	assert.Empty(t, d.DefaultExpr)

	d = UUID("id").DefaultExpr("gen_random_uuid()").Descriptor()
	assert.True(t, d.HasDefault)
	assert.Equal(t, "gen_random_uuid()", d.DefaultExpr)
}

func TestConstructorKinds(t *testing.T) {
	assert.Equal(t, TypeBool, Bool("b").Descriptor().Type)
	assert.Equal(t, TypeInt, Int("i").Descriptor().Type)
	assert.Equal(t, TypeInt64, Int64("i").Descriptor().Type)
	assert.Equal(t, TypeFloat64, Float64("f").Descriptor().Type)
	assert.Equal(t, TypeString, String("s").Descriptor().Type)
	assert.Equal(t, TypeString, Text("s").Descriptor().Type)
	assert.Equal(t, TypeTime, Time("t").Descriptor().Type)
	assert.Equal(t, TypeUUID, UUID("u").Descriptor().Type)
	assert.Equal(t, TypeBytes, Bytes("b").Descriptor().Type)
	assert.Equal(t, TypeJSON, JSON("j").Descriptor().Type)
}
