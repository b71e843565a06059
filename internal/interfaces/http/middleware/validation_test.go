package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sellaids/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardInput struct {
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,phone"`
	IFSC    string `json:"ifsc_code" binding:"required,ifsc"`
	Pincode string `json:"postal_code" binding:"required,pincode"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req wizardInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req)
}

func TestSetupValidator_CustomTags(t *testing.T) {
	router := validationRouter()

	t.Run("valid input", func(t *testing.T) {
		w := postJSON(router, `{"email":"a@b.in","phone":"+91 98765 43210","ifsc_code":"HDFC0001234","postal_code":"560001"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid input reports json field names", func(t *testing.T) {
		w := postJSON(router, `{"email":"nope","phone":"12345","ifsc_code":"HDFC1234","postal_code":"060001"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
			assert.Equal(t, dto.ErrCodeValidationFormat, d.Code)
		}
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Contains(t, fields["phone"], "mobile number")
		assert.Contains(t, fields["ifsc_code"], "IFSC")
		assert.Contains(t, fields["postal_code"], "pincode")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(router, `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidationRequired)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type sample struct {
		Name       string   `validate:"min=2"`
		Bio        string   `validate:"max=3"`
		Categories []string `validate:"min=1"`
		Kind       string   `validate:"oneof=individual company"`
		Count      int      `validate:"gte=10"`
	}

	err := validator.New().Struct(sample{Name: "a", Bio: "too long", Kind: "x"})
	require.Error(t, err)

	messages := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		messages[e.Field()] = getValidationMessage(e)
	}
	assert.Equal(t, "Must be at least 2 characters", messages["Name"])
	assert.Equal(t, "Must be at most 3 characters", messages["Bio"])
	assert.Equal(t, "Must contain at least 1 items", messages["Categories"])
	assert.Equal(t, "Must be one of: individual company", messages["Kind"])
	assert.Equal(t, "Must be greater than or equal to 10", messages["Count"])
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Details)
}
