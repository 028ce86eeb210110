package dto

import (
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/internal/store"
)

// SaveLockRequest trava ou destrava a gravação local
type SaveLockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// DataInfoResponse resume o documento guardado
type DataInfoResponse struct {
	Size         string `json:"size"`
	Products     int    `json:"products"`
	Clients      int    `json:"clients"`
	Sales        int    `json:"sales"`
	Purchases    int    `json:"purchases"`
	Consumptions int    `json:"consumptions"`
	SaveLocked   bool   `json:"saveLocked"`
	SyncID       string `json:"syncId,omitempty"`
}

// ToDataInfoResponse converte o estado em DataInfoResponse
func ToDataInfoResponse(st *state.AppState, saveLocked bool) DataInfoResponse {
	return DataInfoResponse{
		Size:         st.SizeKB(),
		Products:     len(st.Products),
		Clients:      len(st.Clients),
		Sales:        len(st.Sales),
		Purchases:    len(st.Purchases),
		Consumptions: len(st.Consumptions),
		SaveLocked:   saveLocked,
		SyncID:       st.SyncID,
	}
}

// SyncIDRequest vincula (ou desvincula, com valor vazio) um código de sincronização
type SyncIDRequest struct {
	SyncID string `json:"syncId"`
}

// SyncStatusResponse representa a situação da sincronização
type SyncStatusResponse struct {
	Enabled   bool       `json:"enabled"`
	SyncID    string     `json:"syncId,omitempty"`
	Status    string     `json:"status"`
	LastSync  *time.Time `json:"lastSync,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

// ToSyncStatusResponse converte store.SyncInfo em SyncStatusResponse
func ToSyncStatusResponse(info store.SyncInfo) SyncStatusResponse {
	resp := SyncStatusResponse{
		Enabled:   info.Enabled,
		SyncID:    info.SyncID,
		Status:    string(info.Status),
		LastError: info.LastError,
	}
	if !info.LastSync.IsZero() {
		last := info.LastSync
		resp.LastSync = &last
	}
	return resp
}

// SettingsRequest altera as preferências. Campos ausentes mantêm o valor atual.
type SettingsRequest struct {
	StockThreshold *int     `json:"stockThreshold"`
	MonthlyGoal    *float64 `json:"monthlyGoal"`
}

// SettingsResponse representa as preferências salvas
type SettingsResponse struct {
	StockThreshold int     `json:"stockThreshold"`
	MonthlyGoal    float64 `json:"monthlyGoal"`
}

// ToSettingsResponse converte store.Settings em SettingsResponse
func ToSettingsResponse(s store.Settings) SettingsResponse {
	return SettingsResponse{StockThreshold: s.StockThreshold, MonthlyGoal: s.MonthlyGoal}
}
