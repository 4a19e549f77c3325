package claims_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/claims"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/pool/mocks"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

func TestGetClaimable(t *testing.T) {
	params := api.GetClaimableParams{From: mapping.ToDate("2024-01-01"), To: mapping.ToDate("2024-01-31")}

	t.Run("Success", func(t *testing.T) {
		service := mocks.NewClaimService(t)
		service.On("Claimable", mock.Anything, "u1", "2024-01-01", "2024-01-31").Return(&pool.Claimable{
			UserID:    "u1",
			From:      "2024-01-01",
			To:        "2024-01-31",
			Awarded:   150,
			Settled:   100,
			Claimable: 50,
			Awards: []pool.ClaimableAward{
				{GameDay: "2024-01-03", Tier: models.TierFirst, TicketID: "t1", Amount: 100, Settled: true},
				{GameDay: "2024-01-09", Tier: models.TierThird, TicketID: "t9", Amount: 50},
			},
		}, nil)
		h := claims.NewClaimsHandler(service, mapping.New(0))

		req := httptest.NewRequest(http.MethodGet, "/users/u1/claimable?from=2024-01-01&to=2024-01-31", nil)
		rr := httptest.NewRecorder()
		h.GetClaimable(rr, req, "u1", params)

		assert.Equal(t, http.StatusOK, rr.Code)
		var out api.Claimable
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, int64(50), out.Claimable.Units)
		require.Len(t, out.Awards, 2)
		assert.True(t, out.Awards[0].Settled)
		assert.Equal(t, "2024-01-09", out.Awards[1].GameDay.String())
	})

	t.Run("Range Too Long", func(t *testing.T) {
		service := mocks.NewClaimService(t)
		service.On("Claimable", mock.Anything, "u1", "2024-01-01", "2024-01-31").Return(nil, fmt.Errorf("%w: range", pool.ErrValidation))
		h := claims.NewClaimsHandler(service, mapping.New(0))

		req := httptest.NewRequest(http.MethodGet, "/users/u1/claimable", nil)
		rr := httptest.NewRecorder()
		h.GetClaimable(rr, req, "u1", params)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRecordSettlement(t *testing.T) {
	ref := "0xfeed"
	body, _ := json.Marshal(api.NewSettlement{UserId: "u1", TicketId: "t1", GameDay: mapping.ToDate("2024-01-03"), Tier: api.TierFirst, Amount: 100, TxRef: &ref})
	want := models.Settlement{UserID: "u1", TicketID: "t1", GameDay: "2024-01-03", Tier: models.TierFirst, Amount: 100, TxRef: ref}

	t.Run("Success", func(t *testing.T) {
		service := mocks.NewClaimService(t)
		stored := want
		stored.SettledAt = time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)
		service.On("RecordSettlement", mock.Anything, want).Return(&stored, nil)
		h := claims.NewClaimsHandler(service, mapping.New(0))

		req := httptest.NewRequest(http.MethodPost, "/settlements", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.RecordSettlement(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var out api.Settlement
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		require.NotNil(t, out.TxRef)
		assert.Equal(t, ref, *out.TxRef)
		assert.True(t, stored.SettledAt.Equal(out.SettledAt))
	})

	t.Run("Already Settled", func(t *testing.T) {
		service := mocks.NewClaimService(t)
		service.On("RecordSettlement", mock.Anything, want).Return(nil, storage.ErrAlreadySettled)
		h := claims.NewClaimsHandler(service, mapping.New(0))

		req := httptest.NewRequest(http.MethodPost, "/settlements", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.RecordSettlement(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
