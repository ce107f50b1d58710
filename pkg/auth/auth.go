// Package auth provides the credential records handed to the game.
//
// Only offline credentials are produced here. Account sign-in belongs to an
// external provider; its result can be passed through Explicit.
package auth

import (
	"crypto/md5"
	"regexp"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/google/uuid"
)

// UserTypeLegacy tags sessions that were not issued by an account service
const UserTypeLegacy = "legacy"

var validName = regexp.MustCompile(`^[A-Za-z0-9_]{1,16}$`)

// Offline builds a credential for name with the same UUID the game derives
// for unauthenticated players.
func Offline(name string) (types.Credential, error) {
	name = strings.TrimSpace(name)
	if !validName.MatchString(name) {
		return types.Credential{}, errors.Newf(errors.ErrInvalidInput, "invalid player name %q", name).
			WithDetail("name", name)
	}
	return types.Credential{
		DisplayName: name,
		UUID:        compact(OfflineUUID(name)),
		AccessToken: compact(uuid.New()),
		UserType:    UserTypeLegacy,
	}, nil
}

// Explicit wraps credentials obtained elsewhere. Missing ids fall back to the offline ones.
func Explicit(name, id, accessToken, userType string) (types.Credential, error) {
	cred, err := Offline(name)
	if err != nil {
		return types.Credential{}, err
	}
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return types.Credential{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid player uuid %q", id)
		}
		cred.UUID = compact(parsed)
	}
	if accessToken != "" {
		cred.AccessToken = accessToken
	}
	if userType != "" {
		cred.UserType = userType
	}
	return cred, nil
}

// OfflineUUID returns the name-based (version 3) UUID of "OfflinePlayer:<name>"
func OfflineUUID(name string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum)
}

func compact(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
