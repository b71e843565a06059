package setting

import (
	"testing"

	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	values, err := Defaults(GroupNotifications)
	require.NoError(t, err)
	assert.Equal(t, "false", values[KeySMSEnabled])
	assert.Len(t, values, 4)

	_, err = Defaults("shipping")
	assert.Error(t, err)
}

func TestGroups(t *testing.T) {
	assert.Equal(t, []string{"general", "notifications", "payments", "security"}, Groups())
}

func TestValidate(t *testing.T) {
	t.Run("normalizes typed values", func(t *testing.T) {
		out, err := Validate(GroupNotifications, map[string]string{
			"sms_enabled":   " TRUE ",
			"email_enabled": "0",
		})
		require.NoError(t, err)
		assert.Equal(t, []Setting{
			{Group: GroupNotifications, Key: "email_enabled", Value: "false"},
			{Group: GroupNotifications, Key: "sms_enabled", Value: "true"},
		}, out)
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		_, err := Validate("shipping", map[string]string{"a": "b"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "NOT_FOUND", de.Code)
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		_, err := Validate(GroupGeneral, map[string]string{"theme": "dark"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "VALIDATION_ERROR", de.Code)
	})

	t.Run("checks integer bounds", func(t *testing.T) {
		_, err := Validate(GroupPayments, map[string]string{"commission_rate": "150"})
		assert.Error(t, err)
		_, err = Validate(GroupPayments, map[string]string{"commission_rate": "ten"})
		assert.Error(t, err)
		out, err := Validate(GroupPayments, map[string]string{"commission_rate": "15"})
		require.NoError(t, err)
		assert.Equal(t, "15", out[0].Value)
	})

	t.Run("rejects empty update", func(t *testing.T) {
		_, err := Validate(GroupGeneral, nil)
		assert.Error(t, err)
	})
}

func TestIsEnabled(t *testing.T) {
	assert.True(t, IsEnabled("true"))
	assert.False(t, IsEnabled("false"))
	assert.False(t, IsEnabled(""))
}
