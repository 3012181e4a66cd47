package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid fields", func(t *testing.T) {
		user, err := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "test@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
	})

	t.Run("normalizes username and email to lowercase", func(t *testing.T) {
		user, err := NewUser("TestUser", "Test@Example.COM", "Password123", RoleSeller)

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("trims username whitespace", func(t *testing.T) {
		user, err := NewUser("  testuser  ", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("fails with empty username", func(t *testing.T) {
		_, err := NewUser("", "test@example.com", "Password123", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("ab", "test@example.com", "Password123", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with invalid username characters", func(t *testing.T) {
		_, err := NewUser("test@user", "test@example.com", "Password123", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only contain letters")
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser("testuser", "", "Password123", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid email format", func(t *testing.T) {
		_, err := NewUser("testuser", "invalid-email", "Password123", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("testuser", "test@example.com", "Pass1", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with password without numbers", func(t *testing.T) {
		_, err := NewUser("testuser", "test@example.com", "Password", RoleCustomer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one letter and one number")
	})

	t.Run("fails with invalid role", func(t *testing.T) {
		_, err := NewUser("testuser", "test@example.com", "Password123", Role("superuser"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Role must be")
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)
	require.NoError(t, err)

	t.Run("accepts correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("Password123"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		assert.False(t, user.VerifyPassword("WrongPassword1"))
	})
}

func TestUser_ChangePassword(t *testing.T) {
	t.Run("changes password with correct old password", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		err := user.ChangePassword("Password123", "NewPassword456")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))
		assert.False(t, user.VerifyPassword("Password123"))
	})

	t.Run("fails with wrong old password", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		err := user.ChangePassword("WrongPassword1", "NewPassword456")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("fails with weak new password", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		err := user.ChangePassword("Password123", "weak")

		assert.Error(t, err)
	})
}

func TestUser_StatusTransitions(t *testing.T) {
	t.Run("deactivate and reactivate", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, user.Deactivate())
		assert.Equal(t, UserStatusDeactivated, user.Status)
		assert.False(t, user.CanLogin())

		require.NoError(t, user.Activate())
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.CanLogin())
	})

	t.Run("cannot deactivate twice", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, user.Deactivate())
		assert.Error(t, user.Deactivate())
	})

	t.Run("cannot lock deactivated user", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, user.Deactivate())
		assert.Error(t, user.Lock(time.Hour))
	})

	t.Run("unlock restores active status", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, user.Lock(time.Hour))
		assert.True(t, user.IsLocked())

		require.NoError(t, user.Unlock())
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Zero(t, user.FailedAttempts)
	})
}

func TestUser_LoginTracking(t *testing.T) {
	t.Run("locks after max failed attempts", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.RecordLoginFailure(3, time.Hour))

		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("lock expires after duration", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		require.NoError(t, user.Lock(-time.Minute))
		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("successful login resets failed attempts", func(t *testing.T) {
		user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

		user.RecordLoginFailure(5, time.Hour)
		user.RecordLoginFailure(5, time.Hour)
		user.RecordLoginSuccess()

		assert.Zero(t, user.FailedAttempts)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestUser_SetRole(t *testing.T) {
	user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

	require.NoError(t, user.SetRole(RoleAdmin))
	assert.True(t, user.IsAdmin())

	assert.Error(t, user.SetRole(Role("root")))
}

func TestUser_SetDisplayName(t *testing.T) {
	user, _ := NewUser("testuser", "test@example.com", "Password123", RoleCustomer)

	require.NoError(t, user.SetDisplayName("  Ada Lovelace  "))
	assert.Equal(t, "Ada Lovelace", user.DisplayName)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, user.SetDisplayName(string(long)))
}
