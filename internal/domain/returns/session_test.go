package returns

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, kindCode string) *ReturnSession {
	t.Helper()
	session, err := NewReturnSession(uuid.New(), uuid.New(), kindCode)
	require.NoError(t, err)
	return session
}

func confirmTestSource(t *testing.T, session *ReturnSession, lines []SourceLine) SourceRef {
	t.Helper()
	ref := SourceRef{
		ID:               uuid.New(),
		Type:             session.SourceType,
		DocumentNumber:   "PED-00042",
		CustomerName:     "Maria Souza",
		CustomerDocument: "123.456.789-00",
		Total:            decimal.NewFromFloat(250.00),
		ShippingCost:     decimal.NewFromFloat(15.00),
	}
	require.NoError(t, session.ConfirmSource(ref, lines))
	return ref
}

func TestNewReturnSession(t *testing.T) {
	t.Run("starts searching for a source", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		assert.Equal(t, StateSearchingSource, session.State)
		assert.Equal(t, SourceOrders, session.SourceType)
		assert.Equal(t, KindPartialReturn, session.Kind)
	})

	t.Run("unknown kind is fatal", func(t *testing.T) {
		_, err := NewReturnSession(uuid.New(), uuid.New(), "ZZZ")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_KIND", domainErr.Code)
	})

	t.Run("empty branch rejected", func(t *testing.T) {
		_, err := NewReturnSession(uuid.New(), uuid.Nil, "DVP")
		assert.Error(t, err)
	})
}

func TestReturnSession_ChooseSourceType(t *testing.T) {
	t.Run("exchange may source from prior returns", func(t *testing.T) {
		session := newTestSession(t, "CAM")
		require.NoError(t, session.ChooseSourceType(SourceReturns))
		assert.Equal(t, SourceReturns, session.SourceType)
	})

	t.Run("non-exchange kinds are order-sourced only", func(t *testing.T) {
		for _, code := range []string{"DVT", "DVP"} {
			session := newTestSession(t, code)
			assert.Error(t, session.ChooseSourceType(SourceReturns))
			assert.Equal(t, SourceOrders, session.SourceType)
		}
	})

	t.Run("locked after source confirmation", func(t *testing.T) {
		session := newTestSession(t, "CAM")
		confirmTestSource(t, session, testSourceLines())
		assert.Error(t, session.ChooseSourceType(SourceReturns))
	})
}

func TestReturnSession_ConfirmSource(t *testing.T) {
	t.Run("full return auto-seeds every line", func(t *testing.T) {
		session := newTestSession(t, "DVT")
		src := testSourceLines()
		confirmTestSource(t, session, src)

		assert.Equal(t, StateSourceConfirmed, session.State)
		require.Equal(t, len(src), session.ReturnLines.Len())
		for i, line := range session.ReturnLines.ToList() {
			assert.Equal(t, src[i].Quantity, line.Quantity)
		}
		assert.True(t, session.ReturnLines.IsReadOnly())
	})

	t.Run("partial return starts with an empty selection", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		confirmTestSource(t, session, testSourceLines())
		assert.Equal(t, 0, session.ReturnLines.Len())
	})

	t.Run("shipping cost copied from the source", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		confirmTestSource(t, session, testSourceLines())
		assert.True(t, session.ShippingCost.Equal(decimal.NewFromFloat(15.00)))
	})

	t.Run("source type mismatch rejected", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		ref := SourceRef{ID: uuid.New(), Type: SourceReturns}
		assert.Error(t, session.ConfirmSource(ref, testSourceLines()))
		assert.Equal(t, StateSearchingSource, session.State)
	})

	t.Run("double confirmation rejected", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		confirmTestSource(t, session, testSourceLines())
		err := session.ConfirmSource(SourceRef{ID: uuid.New(), Type: SourceOrders}, testSourceLines())
		assert.Error(t, err)
	})

	t.Run("empty line set rejected and session untouched", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		err := session.ConfirmSource(SourceRef{ID: uuid.New(), Type: SourceOrders}, nil)
		require.Error(t, err)
		assert.Equal(t, StateSearchingSource, session.State)
	})
}

func TestReturnSession_SetReturnQuantity(t *testing.T) {
	t.Run("requires a confirmed source", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		assert.Error(t, session.SetReturnQuantity(uuid.New(), 1))
	})

	t.Run("full return quantities are fixed", func(t *testing.T) {
		session := newTestSession(t, "DVT")
		src := testSourceLines()
		confirmTestSource(t, session, src)

		err := session.SetReturnQuantity(src[0].VariationID, 1)
		require.Error(t, err)
		assert.Equal(t, src[0].Quantity, session.ReturnLines.Get(src[0].VariationID).Quantity)
	})

	t.Run("removing a return line clears exchange links to it", func(t *testing.T) {
		session := newTestSession(t, "CAM")
		src := testSourceLines()
		confirmTestSource(t, session, src)
		require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 1))

		returnLineID := session.ReturnLines.Get(src[0].VariationID).LineID
		added, err := session.AddExchangeLine(ExchangeLine{
			VariationID:        uuid.New(),
			StockTypeID:        uuid.New(),
			Quantity:           1,
			UnitPrice:          decimal.NewFromInt(10),
			LinkedReturnLineID: &returnLineID,
		})
		require.NoError(t, err)

		require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 0))
		assert.Nil(t, session.ExchangeLines.Get(added.LineID).LinkedReturnLineID)
	})
}

func TestReturnSession_ExchangeLines(t *testing.T) {
	t.Run("only exchanges carry outgoing lines", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		confirmTestSource(t, session, testSourceLines())

		_, err := session.AddExchangeLine(testExchangeLine())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_KIND", domainErr.Code)
	})

	t.Run("link must reference an existing return line", func(t *testing.T) {
		session := newTestSession(t, "CAM")
		confirmTestSource(t, session, testSourceLines())

		bogus := uuid.New()
		line := testExchangeLine()
		line.LinkedReturnLineID = &bogus
		_, err := session.AddExchangeLine(line)
		require.Error(t, err)
		assert.Equal(t, 0, session.ExchangeLines.Len())
	})

	t.Run("duplicate re-add reports but leaves size unchanged", func(t *testing.T) {
		session := newTestSession(t, "CAM")
		confirmTestSource(t, session, testSourceLines())

		line := testExchangeLine()
		_, err := session.AddExchangeLine(line)
		require.NoError(t, err)
		_, err = session.AddExchangeLine(line)
		require.Error(t, err)
		assert.Equal(t, 1, session.ExchangeLines.Len())
	})
}

func TestReturnSession_Build(t *testing.T) {
	t.Run("collects every missing requirement", func(t *testing.T) {
		session := newTestSession(t, "CAM")

		_, err := session.Build()
		require.Error(t, err)
		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "INCOMPLETE_TRANSACTION", validationErr.Code)
		assert.Len(t, validationErr.Problems, 4) // source, situation, return line, exchange line
	})

	t.Run("non-exchange needs no exchange line", func(t *testing.T) {
		session := newTestSession(t, "DVP")

		_, err := session.Build()
		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Problems, 3)
	})

	t.Run("failed build leaves the session intact", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		src := testSourceLines()
		confirmTestSource(t, session, src)
		require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 2))

		_, err := session.Build() // still missing a situation
		require.Error(t, err)
		assert.Equal(t, StateSourceConfirmed, session.State)
		assert.Equal(t, 1, session.ReturnLines.Len())
	})

	t.Run("partial return payload", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		src := testSourceLines()
		ref := confirmTestSource(t, session, src)
		require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 2)) // 2 x 50.00
		require.NoError(t, session.SetSituation(uuid.New()))
		session.SetReason("defeito de fabricação")

		payload, err := session.Build()
		require.NoError(t, err)
		assert.Equal(t, "DVP", payload.KindCode)
		assert.Equal(t, ref.ID, payload.SourceID)
		assert.Equal(t, "Maria Souza", payload.CustomerName)
		assert.True(t, payload.TotalRefundAmount.Equal(decimal.NewFromFloat(100.00)))
		assert.True(t, payload.TotalExchangeDifference.IsZero())
		require.Len(t, payload.Lines, 1)
		assert.False(t, payload.Lines[0].Outgoing)
	})

	t.Run("exchange payload sets exactly one total", func(t *testing.T) {
		session := newTestSession(t, "CAM")
		src := testSourceLines()
		confirmTestSource(t, session, src)
		require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 1)) // 50.00
		_, err := session.AddExchangeLine(ExchangeLine{
			VariationID: uuid.New(),
			StockTypeID: uuid.New(),
			Quantity:    1,
			UnitPrice:   decimal.NewFromFloat(90.00),
		})
		require.NoError(t, err)
		require.NoError(t, session.SetSituation(uuid.New()))

		payload, err := session.Build()
		require.NoError(t, err)
		assert.True(t, payload.TotalRefundAmount.IsZero())
		assert.True(t, payload.TotalExchangeDifference.Equal(decimal.NewFromFloat(40.00)))
		require.Len(t, payload.Lines, 2)
		assert.False(t, payload.Lines[0].Outgoing)
		assert.True(t, payload.Lines[1].Outgoing)
	})

	t.Run("payments are recorded verbatim", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		src := testSourceLines()
		confirmTestSource(t, session, src)
		require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 1))
		require.NoError(t, session.SetSituation(uuid.New()))

		entry, err := session.AddPayment(uuid.New(), "PIX", decimal.NewFromFloat(999.99))
		require.NoError(t, err)
		require.NoError(t, session.AttachPaymentVoucher(entry.ID, "https://bucket/v.pdf"))

		payload, err := session.Build()
		require.NoError(t, err)
		require.Len(t, payload.Payments, 1)
		assert.True(t, payload.Payments[0].Amount.Equal(decimal.NewFromFloat(999.99)))
		assert.Equal(t, "https://bucket/v.pdf", payload.Payments[0].VoucherURL)
	})
}

func TestReturnSession_ClearSource(t *testing.T) {
	session := newTestSession(t, "CAM")
	src := testSourceLines()
	confirmTestSource(t, session, src)
	require.NoError(t, session.SetReturnQuantity(src[0].VariationID, 1))
	_, err := session.AddExchangeLine(testExchangeLine())
	require.NoError(t, err)
	_, err = session.AddPayment(uuid.New(), "PIX", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, session.ClearSource())
	assert.Equal(t, StateSearchingSource, session.State)
	assert.Equal(t, 0, session.ReturnLines.Len())
	assert.Equal(t, 0, session.ExchangeLines.Len())
	// Payments survive a source change.
	assert.Equal(t, 1, session.Payments.Len())
}

func TestReturnSession_SetShipping(t *testing.T) {
	session := newTestSession(t, "DVP")
	assert.Error(t, session.SetShipping(true, decimal.NewFromInt(-1)))
	require.NoError(t, session.SetShipping(true, decimal.NewFromFloat(12.50)))
	assert.True(t, session.ShippingReturn)
}

func TestReturnSession_UpdateHeader(t *testing.T) {
	t.Run("applies every patched field", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		reason := "produto com defeito"
		situationID := uuid.New()
		warehouseID := uuid.New()
		shippingReturn := true
		cost := decimal.NewFromFloat(9.90)

		require.NoError(t, session.UpdateHeader(HeaderPatch{
			Reason:         &reason,
			SituationID:    &situationID,
			ShippingReturn: &shippingReturn,
			ShippingCost:   &cost,
			WarehouseID:    &warehouseID,
		}))

		assert.Equal(t, reason, session.Reason)
		assert.Equal(t, situationID, session.SituationID)
		assert.True(t, session.ShippingReturn)
		assert.True(t, session.ShippingCost.Equal(cost))
		require.NotNil(t, session.WarehouseID)
		assert.Equal(t, warehouseID, *session.WarehouseID)
	})

	t.Run("rejected patch changes nothing", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		session.SetReason("motivo original")

		reason := "motivo novo"
		nilID := uuid.Nil
		err := session.UpdateHeader(HeaderPatch{
			Reason:      &reason,
			SituationID: &nilID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SITUATION", domainErr.Code)
		// The valid leading field must not stick when a later one fails.
		assert.Equal(t, "motivo original", session.Reason)
		assert.Equal(t, uuid.Nil, session.SituationID)
	})

	t.Run("negative shipping cost rejects the whole patch", func(t *testing.T) {
		session := newTestSession(t, "DVP")
		reason := "frete devolvido"
		shippingReturn := true
		cost := decimal.NewFromInt(-5)

		err := session.UpdateHeader(HeaderPatch{
			Reason:         &reason,
			ShippingReturn: &shippingReturn,
			ShippingCost:   &cost,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SHIPPING", domainErr.Code)
		assert.Empty(t, session.Reason)
		assert.False(t, session.ShippingReturn)
	})
}
