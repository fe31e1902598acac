package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"mightymoves/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Service:     "move",
	Title:       "Book a Move",
	SubmitLabel: "Book Move",
	Fields: []models.FormField{
		models.TextField("pickup", "Pickup Location", "Pickup Address"),
		models.SelectField("vehicle", "Vehicle Type", "Small Van", "Large Truck"),
		models.DateTimeField("datetime", "Date & Time"),
	},
	RequireTerms: true,
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func filled(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetValue("pickup", "1 High St"))
	require.NoError(t, c.SetValue("vehicle", "Small Van"))
	require.NoError(t, c.SetValue("datetime", "2025-06-01T09:30"))
}

func ready(t *testing.T, c *Controller) {
	t.Helper()
	filled(t, c)
	require.NoError(t, c.SelectPaymentMethod("PayPal"))
	require.NoError(t, c.ClosePaymentModal())
	c.SetTermsAccepted(true)
}

func neverCalled(t *testing.T) SubmitHandler {
	return func(ctx context.Context, values map[string]string) error {
		t.Fatal("handler must not be called")
		return nil
	}
}

func TestSubmitGatesInOrder(t *testing.T) {
	ctx := context.Background()
	c := NewController(testSchema, nil)

	err := c.Submit(ctx, neverCalled(t))
	v, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonMissingField, v.Reason)
	assert.Equal(t, MsgFillAllFields, c.View().Error)

	filled(t, c)
	err = c.Submit(ctx, neverCalled(t))
	v, _ = AsValidation(err)
	assert.Equal(t, ReasonMissingPayment, v.Reason)
	assert.Equal(t, MsgSelectPayment, c.View().Error)

	require.NoError(t, c.SelectPaymentMethod("Bank Transfer"))
	err = c.Submit(ctx, neverCalled(t))
	v, _ = AsValidation(err)
	assert.Equal(t, ReasonUnacknowledged, v.Reason)
	assert.Equal(t, MsgReviewPayment, c.View().Error)

	require.NoError(t, c.ClosePaymentModal())
	err = c.Submit(ctx, neverCalled(t))
	v, _ = AsValidation(err)
	assert.Equal(t, ReasonTermsNotChecked, v.Reason)
	assert.Equal(t, MsgTermsRequired, c.View().Error)
}

func TestEditClearsInlineError(t *testing.T) {
	ctx := context.Background()
	c := NewController(testSchema, nil)

	_, ok := AsValidation(c.Submit(ctx, neverCalled(t)))
	require.True(t, ok)
	require.Equal(t, MsgFillAllFields, c.View().Error)

	filled(t, c)
	require.NoError(t, c.SelectPaymentMethod("PayPal"))
	assert.Empty(t, c.View().Error)

	_, ok = AsValidation(c.Submit(ctx, neverCalled(t)))
	require.True(t, ok)
	require.Equal(t, MsgReviewPayment, c.View().Error)
	require.NoError(t, c.ClosePaymentModal())
	assert.Empty(t, c.View().Error)

	_, ok = AsValidation(c.Submit(ctx, neverCalled(t)))
	require.True(t, ok)
	require.Equal(t, MsgTermsRequired, c.View().Error)
	c.SetTermsAccepted(true)
	assert.Empty(t, c.View().Error)

	require.NoError(t, c.SetValue("pickup", ""))
	_, ok = AsValidation(c.Submit(ctx, neverCalled(t)))
	require.True(t, ok)
	require.NoError(t, c.SetValue("pickup", "2 Low Rd"))
	assert.Empty(t, c.View().Error)
}

func TestRejectedEditKeepsInlineError(t *testing.T) {
	c := NewController(testSchema, nil)
	_, ok := AsValidation(c.Submit(context.Background(), neverCalled(t)))
	require.True(t, ok)

	_, ok = AsValidation(c.SetValue("vehicle", "Rocket"))
	require.True(t, ok)
	assert.Equal(t, MsgFillAllFields, c.View().Error)
}

func TestWhitespaceCountsAsEmpty(t *testing.T) {
	c := NewController(testSchema, nil)
	ready(t, c)
	require.NoError(t, c.SetValue("pickup", "   "))

	err := c.Submit(context.Background(), neverCalled(t))
	v, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "pickup", v.Field)
}

func TestSubmitPassesFullValues(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewController(testSchema, nil, WithClock(clock.Now), WithSuccessTTL(time.Second))
	ready(t, c)

	var got map[string]string
	err := c.Submit(context.Background(), func(ctx context.Context, values map[string]string) error {
		got = values
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "PayPal", got[PaymentMethodKey])
	assert.Equal(t, "Small Van", got["vehicle"])

	view := c.View()
	assert.True(t, view.Success)
	assert.Empty(t, view.Error)

	clock.t = clock.t.Add(2 * time.Second)
	assert.False(t, c.View().Success)
}

func TestHandlerFailureShowsNoSuccess(t *testing.T) {
	c := NewController(testSchema, nil)
	ready(t, c)
	boom := errors.New("boom")

	err := c.Submit(context.Background(), func(ctx context.Context, values map[string]string) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.View().Success)
	assert.Equal(t, "1 High St", c.Value("pickup"))
}

func TestChangingPaymentMethodRearmsModal(t *testing.T) {
	c := NewController(testSchema, nil)
	ready(t, c)

	require.NoError(t, c.SetValue(PaymentMethodKey, "Apple Pay"))
	view := c.View()
	require.NotNil(t, view.PaymentModal)
	assert.Equal(t, models.PaymentApplePay, view.PaymentModal.Method)
	assert.False(t, view.Acknowledged)

	err := c.Submit(context.Background(), neverCalled(t))
	v, _ := AsValidation(err)
	assert.Equal(t, ReasonUnacknowledged, v.Reason)
}

func TestCloseModalWhenClosed(t *testing.T) {
	c := NewController(testSchema, nil)
	assert.ErrorIs(t, c.ClosePaymentModal(), ErrModalNotOpen)
	assert.False(t, c.State().Acknowledged)
}

func TestSetValueValidation(t *testing.T) {
	c := NewController(testSchema, nil)

	v, ok := AsValidation(c.SetValue("colour", "red"))
	require.True(t, ok)
	assert.Equal(t, ReasonUnknownField, v.Reason)

	v, ok = AsValidation(c.SetValue("vehicle", "Rocket"))
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidOption, v.Reason)

	v, ok = AsValidation(c.SetValue("datetime", "tomorrow"))
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidDateTime, v.Reason)

	v, ok = AsValidation(c.SetValue(PaymentMethodKey, "Cash"))
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidPayment, v.Reason)

	assert.NoError(t, c.SetValue("vehicle", ""))
}

func TestTermsOptionalForms(t *testing.T) {
	schema := testSchema
	schema.RequireTerms = false
	c := NewController(schema, nil)
	filled(t, c)
	require.NoError(t, c.SelectPaymentMethod("PayPal"))
	require.NoError(t, c.ClosePaymentModal())

	called := false
	require.NoError(t, c.Submit(context.Background(), func(ctx context.Context, values map[string]string) error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestResetKeepsSuccessIndicator(t *testing.T) {
	c := NewController(testSchema, nil)
	ready(t, c)
	require.NoError(t, c.Submit(context.Background(), func(ctx context.Context, values map[string]string) error {
		return nil
	}))

	c.Reset()
	view := c.View()
	assert.True(t, view.Success)
	assert.Empty(t, view.PaymentMethod)
	assert.False(t, view.TermsAccepted)
	for _, f := range testSchema.Fields {
		assert.Empty(t, view.Values[f.Name])
	}
}

func TestResumeFromState(t *testing.T) {
	c := NewController(testSchema, nil)
	filled(t, c)
	require.NoError(t, c.SelectPaymentMethod("PayPal"))

	resumed := NewController(testSchema, ptr(c.State()))
	assert.Equal(t, "1 High St", resumed.Value("pickup"))
	assert.Equal(t, "PayPal", resumed.Value(PaymentMethodKey))
	assert.NotNil(t, resumed.View().PaymentModal)
}

func ptr[T any](v T) *T { return &v }
