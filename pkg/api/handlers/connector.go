package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/listingpro/pkg/api/errors"
	"github.com/jordanlanch/listingpro/pkg/connectors"
	"github.com/jordanlanch/listingpro/pkg/models"
)

// ConnectorHandler handles integration connect/disconnect requests.
type ConnectorHandler struct {
	service *connectors.Service
}

// NewConnectorHandler creates a new connector handler.
func NewConnectorHandler(service *connectors.Service) *ConnectorHandler {
	return &ConnectorHandler{service: service}
}

// Status reports which integrations are connected.
func (h *ConnectorHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Status())
}

// ConnectGmail marks Gmail as connected.
func (h *ConnectorHandler) ConnectGmail(c echo.Context) error {
	h.service.ConnectGmail(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}

// DisconnectGmail clears the Gmail connection.
func (h *ConnectorHandler) DisconnectGmail(c echo.Context) error {
	h.service.DisconnectGmail(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}

// ConnectTwilio stores Twilio credentials.
func (h *ConnectorHandler) ConnectTwilio(c echo.Context) error {
	var cfg models.TwilioConfig
	if err := c.Bind(&cfg); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.service.ConnectTwilio(c.Request().Context(), cfg); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Status())
}

// DisconnectTwilio removes Twilio credentials.
func (h *ConnectorHandler) DisconnectTwilio(c echo.Context) error {
	h.service.DisconnectTwilio(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}

// ConnectSMTP stores SMTP settings.
func (h *ConnectorHandler) ConnectSMTP(c echo.Context) error {
	var cfg models.SMTPConfig
	if err := c.Bind(&cfg); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.service.ConnectSMTP(c.Request().Context(), cfg); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Status())
}

// DisconnectSMTP removes SMTP settings.
func (h *ConnectorHandler) DisconnectSMTP(c echo.Context) error {
	h.service.DisconnectSMTP(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}

// ConnectManyChat marks ManyChat as connected.
func (h *ConnectorHandler) ConnectManyChat(c echo.Context) error {
	h.service.ConnectManyChat(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}

// DisconnectManyChat clears the ManyChat connection.
func (h *ConnectorHandler) DisconnectManyChat(c echo.Context) error {
	h.service.DisconnectManyChat(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}

// ConnectVbout stores the VBOUT api key.
func (h *ConnectorHandler) ConnectVbout(c echo.Context) error {
	var body struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.Bind(&body); err != nil {
		return apierrors.Bind(c)
	}
	if err := h.service.ConnectVbout(c.Request().Context(), body.APIKey); err != nil {
		return apierrors.Domain(c, err)
	}
	return c.JSON(http.StatusOK, h.service.Status())
}

// DisconnectVbout clears the VBOUT connection.
func (h *ConnectorHandler) DisconnectVbout(c echo.Context) error {
	h.service.DisconnectVbout(c.Request().Context())
	return c.JSON(http.StatusOK, h.service.Status())
}
