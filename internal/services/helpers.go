package services

import (
	"context"
	"strconv"

	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/store"
)

// LoginPath is where a learner without a session is sent.
const LoginPath = "login.html"

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func currentUser(ctx context.Context, st *store.Store) (*models.Profile, bool) {
	var p models.Profile
	if !st.Get(ctx, store.KeyCurrentUser, &p) {
		return nil, false
	}
	return &p, true
}
