package contact

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/chukwumaoranu/portfolio-gw/internal/instrumentation"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validMessage() upstream.ContactMessage {
	return upstream.ContactMessage{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Project inquiry",
		Message: "I would like to talk about a collaboration.",
	}
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(validMessage()))

	testCases := []struct {
		name          string
		mutate        func(m *upstream.ContactMessage)
		expectedField string
		expectedError string
	}{
		{
			name:          "ShortName",
			mutate:        func(m *upstream.ContactMessage) { m.Name = "A" },
			expectedField: "name",
			expectedError: "Name must be at least 2 characters",
		},
		{
			name:          "InvalidEmail",
			mutate:        func(m *upstream.ContactMessage) { m.Email = "ada at example" },
			expectedField: "email",
			expectedError: "Please enter a valid email address",
		},
		{
			name:          "ShortSubject",
			mutate:        func(m *upstream.ContactMessage) { m.Subject = "Hey" },
			expectedField: "subject",
			expectedError: "Subject must be at least 5 characters",
		},
		{
			name:          "ShortMessage",
			mutate:        func(m *upstream.ContactMessage) { m.Message = "Hi!" },
			expectedField: "message",
			expectedError: "Message must be at least 10 characters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			message := validMessage()
			tc.mutate(&message)

			fieldErrors := Validate(message)
			require.Len(t, fieldErrors, 1)
			assert.Equal(t, tc.expectedError, fieldErrors[tc.expectedField])
		})
	}
}

func TestValidate_allFieldsAtOnce(t *testing.T) {
	fieldErrors := Validate(upstream.ContactMessage{})
	assert.Len(t, fieldErrors, 4)
}

func TestService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := upstream.NewMockAPI(ctrl)
	instr := instrumentation.NewTestInstrumentation()
	service := NewService(apiMock, instr)

	message := validMessage()
	apiMock.
		EXPECT().
		Post(gomock.Any(), "/api/contact/add", message).
		Return(json.RawMessage("null"), nil)

	require.NoError(t, service.Submit(context.Background(), message))
	assert.Equal(t, float64(1), testutil.ToFloat64(instr.CounterContactMessages))
}

func TestService_Submit_invalidNeverReachesUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no EXPECT set up, any upstream call fails the test
	apiMock := upstream.NewMockAPI(ctrl)
	instr := instrumentation.NewTestInstrumentation()
	service := NewService(apiMock, instr)

	err := service.Submit(context.Background(), upstream.ContactMessage{Name: "A"})
	require.Error(t, err)

	var validationErr *ErrValidation
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.FieldErrors, 4)
	assert.Equal(t, float64(0), testutil.ToFloat64(instr.CounterContactMessages))
}

func TestService_adminInbox(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := upstream.NewMockAPI(ctrl)
	service := NewService(apiMock, instrumentation.NewTestInstrumentation())
	ctx := context.Background()

	apiMock.
		EXPECT().
		Get(gomock.Any(), "/api/contact").
		Return(json.RawMessage(`[
			{"id":1,"name":"Ada","email":"ada@example.com","subject":"Hello there","message":"A long enough message."},
			{"id":2,"name":"Grace","email":"grace@example.com","subject":"Question","message":"Another long enough message."}
		]`), nil).
		Times(1)

	messages, err := service.All(ctx, false)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	apiMock.
		EXPECT().
		Delete(gomock.Any(), "/api/contact/delete/1").
		Return(json.RawMessage("null"), nil)

	require.NoError(t, service.Delete(ctx, 1))

	messages, err = service.All(ctx, false)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, 2, messages[0].ID)
}
