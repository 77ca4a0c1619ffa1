package controllers

import (
	"net/http"

	"github.com/dukahub/dukapos-backend/api/responses"
	"github.com/dukahub/dukapos-backend/api/validators"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

// SnapshotExport dumps every collection as one JSON document.
func SnapshotExport(snap *catalog.Snapshot, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		data, err := snap.Export(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, data)
	}
}

// SnapshotImport replaces the collections with the posted snapshot.
func SnapshotImport(snap *catalog.Snapshot, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		var data catalog.SnapshotData
		if err := validators.DecodeJSONBody(r, &data); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := snap.Import(r.Context(), &data); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "imported"})
	}
}

// SnapshotPersist writes the collections to the key-value store.
func SnapshotPersist(snap *catalog.Snapshot, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		if err := snap.Persist(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "persisted"})
	}
}

// SnapshotRestore reloads the collections from the key-value store.
func SnapshotRestore(snap *catalog.Snapshot, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		if err := snap.Restore(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "restored"})
	}
}
