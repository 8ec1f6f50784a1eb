package session

import (
	"fmt"
	"strings"

	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/mockdata"
	"station-request-api-server/internal/models"
)

// Account is a station credential and the identity it unlocks.
type Account struct {
	StationCode  string
	PasswordHash string
	User         models.Identity
}

// DefaultAccounts returns the two built-in station logins: PA01 for the
// requester tablet and AP01 for the approver tablet, both with PIN 1234.
func DefaultAccounts(bcryptCost int) ([]Account, error) {
	hash, err := auth.HashPassword("1234", bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash station password: %w", err)
	}
	return []Account{
		{StationCode: "PA01", PasswordHash: hash, User: mockdata.RequesterUser()},
		{StationCode: "AP01", PasswordHash: hash, User: mockdata.ApproverUser()},
	}, nil
}

func match(accounts []Account, stationCode, password string) (models.Identity, bool) {
	code := strings.TrimSpace(stationCode)
	pass := strings.TrimSpace(password)
	for _, a := range accounts {
		if a.StationCode == code && auth.CheckPasswordHash(pass, a.PasswordHash) {
			return a.User, true
		}
	}
	return models.Identity{}, false
}
