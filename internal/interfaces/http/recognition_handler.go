package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/easybill-co/caja-api/internal/application/dto"
	apprecognition "github.com/easybill-co/caja-api/internal/application/recognition"
	"github.com/easybill-co/caja-api/internal/domain"
)

// límite de tamaño de la imagen capturada por la caja
const maxImageBytes = 8 << 20

// RecognitionHandler maneja el flujo de caja por reconocimiento facial.
type RecognitionHandler struct {
	uc *apprecognition.UseCase
}

// NewRecognitionHandler construye el handler.
func NewRecognitionHandler(uc *apprecognition.UseCase) *RecognitionHandler {
	return &RecognitionHandler{uc: uc}
}

// Recognize godoc
// @Summary      Reconocer al cliente y facturar su compra
// @Tags         recognition
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "captura de la cámara de la caja"
// @Success      200  {object}  dto.RecognizeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recognize [post]
func (h *RecognitionHandler) Recognize(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere el campo image (multipart)"})
	}
	if fileHeader.Size > maxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "IMAGE_TOO_LARGE", Message: "la imagen supera el tamaño máximo"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}
	defer f.Close()
	image, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}

	resp, err := h.uc.Recognize(c.Context(), image)
	if err != nil {
		if errors.Is(err, domain.ErrNoFaceMatch) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_MATCH", Message: "ningún cliente registrado coincide con el rostro"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CLIENT_NOT_FOUND", Message: "el cliente reconocido no está registrado en la caja"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// LastRecognized godoc
// @Summary      Último cliente reconocido por la caja
// @Tags         recognition
// @Produce      json
// @Success      200  {object}  dto.LastRecognizedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recognized/last [get]
func (h *RecognitionHandler) LastRecognized(c *fiber.Ctx) error {
	last, ok := h.uc.LastRecognized()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_RECOGNITION", Message: "aún no se ha reconocido ningún cliente"})
	}
	return c.JSON(last)
}

// ClearLast godoc
// @Summary      Limpiar el último reconocimiento (cierre de turno)
// @Tags         recognition
// @Success      204
// @Router       /api/recognized/last [delete]
func (h *RecognitionHandler) ClearLast(c *fiber.Ctx) error {
	h.uc.ClearLast()
	return c.SendStatus(fiber.StatusNoContent)
}
