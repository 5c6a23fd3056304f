package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/roach88/sheetstore/internal/batch"
)

type uploadRequest struct {
	SheetData json.RawMessage `json:"sheetData"`
}

type uploadData struct {
	BatchID  int64            `json:"batchId"`
	Inserted int              `json:"inserted"`
	Errors   []batch.RowError `json:"errors,omitempty"`
}

type batchData struct {
	BatchID int64             `json:"batchId"`
	Count   int               `json:"count"`
	Data    []batch.RowRecord `json:"data"`
}

type batchesData struct {
	Count    int     `json:"count"`
	BatchIDs []int64 `json:"batchIds"`
}

type healthData struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes; split the upload", maxErr.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req uploadRequest
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	if len(req.SheetData) == 0 {
		writeError(w, http.StatusBadRequest, "sheetData array is required")
		return
	}
	if first := firstByte(req.SheetData); first != '[' {
		writeError(w, http.StatusBadRequest, "sheetData must be an array")
		return
	}

	var payloads []batch.Payload
	if err := json.Unmarshal(req.SheetData, &payloads); err != nil {
		writeError(w, http.StatusBadRequest, "sheetData must be an array")
		return
	}
	if len(payloads) == 0 {
		writeError(w, http.StatusBadRequest, "sheetData array cannot be empty")
		return
	}

	batchID, result, err := h.svc.Ingest(r.Context(), payloads)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	resp := envelope{
		Success: true,
		Data: uploadData{
			BatchID:  batchID,
			Inserted: result.Inserted,
			Errors:   result.Errors,
		},
	}

	// Row failures do not fail the upload; they ride back in a 207.
	if len(result.Errors) > 0 {
		resp.Message = fmt.Sprintf("Processed %d of %d rows", result.Inserted, len(payloads))
		writeJSON(w, http.StatusMultiStatus, resp)
		return
	}

	resp.Message = "Data uploaded successfully"
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := strconv.ParseInt(r.PathValue("batchID"), 10, 64)
	if err != nil || batchID <= 0 {
		writeError(w, http.StatusBadRequest, "batch_id must be a positive integer")
		return
	}

	records, err := h.svc.Fetch(r.Context(), batchID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	// The reader cannot tell "never existed" from "every row failed";
	// both surface as not found here.
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No data found for batch_id: %d", batchID))
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: batchData{
			BatchID: batchID,
			Count:   len(records),
			Data:    records,
		},
	})
}

func (h *Handler) handleListBatches(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListBatchIDs(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: batchesData{
			Count:    len(ids),
			BatchIDs: ids,
		},
	})
}

// firstByte returns the first non-whitespace byte of raw, or 0.
func firstByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
