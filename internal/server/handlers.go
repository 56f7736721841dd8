// internal/server/handlers.go
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tamzrod/tic-settings/internal/fix"
	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// SettingsContentType is used for settings text bodies.
const SettingsContentType = "application/yaml"

type handlers struct {
	log     *zap.Logger
	maxBody int64
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- products ----

type productInfo struct {
	Name             string   `json:"name"`
	Model            string   `json:"model"`
	MaxCurrentMA     uint32   `json:"max_current_ma"`
	DefaultCurrentMA uint32   `json:"default_current_ma"`
	StepModes        []string `json:"step_modes"`
	DecayModes       []string `json:"decay_modes,omitempty"`
	Keys             []string `json:"keys"`
}

func describe(v *variant.Variant) productInfo {
	info := productInfo{
		Name:             v.Product.String(),
		Model:            v.Model,
		MaxCurrentMA:     variant.MilliAmps(v.MaxCurrent),
		DefaultCurrentMA: variant.MilliAmps(v.DefaultCurrent),
		Keys:             settings.Keys(v.Product),
	}
	for _, m := range v.StepModes {
		if name, ok := variant.StepModeNames.Name(uint8(m)); ok {
			info.StepModes = append(info.StepModes, name)
		}
	}
	if v.ShowDecayMode {
		for _, d := range v.DecayModes {
			info.DecayModes = append(info.DecayModes, d.Name)
		}
	}
	return info
}

func (h *handlers) listProducts(w http.ResponseWriter, _ *http.Request) {
	var out []productInfo
	for _, p := range variant.Products() {
		out = append(out, describe(variant.MustLookup(p)))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) productDefaults(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "product")

	v, ok := variant.ByName(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Unrecognized product name.")
		return
	}

	text, err := settings.Encode(settings.Defaults(v.Product))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", SettingsContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// ---- fix ----

type fixResponse struct {
	Product         string       `json:"product"`
	FirmwareVersion string       `json:"firmware_version,omitempty"`
	Settings        string       `json:"settings"`
	Warnings        fix.Warnings `json:"warnings"`
}

// fixSettings takes a settings file as the request body and returns the
// fixed file with its warnings. ?firmware_version=1.04 enables the
// firmware checks.
func (h *handlers) fixSettings(w http.ResponseWriter, r *http.Request) {
	firmware, err := variant.ParseFirmwareVersion(r.URL.Query().Get("firmware_version"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "settings file too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := fix.FixText(body, fix.Options{FirmwareVersion: firmware})
	if err != nil {
		var readErr *fix.ReadError
		if errors.As(err, &readErr) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Debug("settings fixed",
		zap.String("product", res.Settings.Product.String()),
		zap.Int("warnings", len(res.Warnings)),
	)

	out := fixResponse{
		Product:  res.Settings.Product.String(),
		Settings: string(res.Text),
		Warnings: res.Warnings,
	}
	if out.Warnings == nil {
		out.Warnings = fix.Warnings{}
	}
	if firmware != 0 {
		out.FirmwareVersion = variant.FormatFirmwareVersion(firmware)
	}
	writeJSON(w, http.StatusOK, out)
}
