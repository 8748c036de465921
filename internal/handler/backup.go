package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// BackupHandler creates, lists, downloads, restores and deletes
// encrypted snapshots of the finance data. Snapshots read through the
// bound stores; restore rewrites the local database, so it is
// disabled while any domain is served remotely.
type BackupHandler struct {
	DB             *gorm.DB
	Stores         *store.Stores
	EncryptKey     string
	Dir            string
	RestoreEnabled bool
}

func NewBackupHandler(db *gorm.DB, stores *store.Stores, encryptKey, dir string, restoreEnabled bool) *BackupHandler {
	return &BackupHandler{
		DB:             db,
		Stores:         stores,
		EncryptKey:     encryptKey,
		Dir:            dir,
		RestoreEnabled: restoreEnabled,
	}
}

// snapshot is the plaintext layout of one backup file.
type snapshot struct {
	Created      time.Time                  `json:"created"`
	Transactions []models.Transaction       `json:"transactions"`
	Accounts     []models.Account           `json:"accounts"`
	Commitments  []models.Commitment        `json:"commitments"`
	Payments     []models.CommitmentPayment `json:"payments"`
	Wishlist     []models.WishlistItem      `json:"wishlist"`
	Debts        []models.Debt              `json:"debts"`
}

func (h *BackupHandler) collect(c *gin.Context) (*snapshot, error) {
	ctx := c.Request.Context()
	snap := &snapshot{Created: time.Now()}

	var err error
	if snap.Transactions, err = h.Stores.Transactions.List(ctx); err != nil {
		return nil, err
	}
	if snap.Accounts, err = h.Stores.Accounts.List(ctx); err != nil {
		return nil, err
	}
	if snap.Commitments, err = h.Stores.Commitments.List(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Payments, err = h.Stores.Payments.List(ctx, store.PaymentFilter{}); err != nil {
		return nil, err
	}
	if snap.Wishlist, err = h.Stores.Wishlist.List(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Debts, err = h.Stores.Debts.List(ctx, store.DebtFilter{}); err != nil {
		return nil, err
	}
	return snap, nil
}

// Create writes an encrypted snapshot file and records it.
func (h *BackupHandler) Create(c *gin.Context) {
	snap, err := h.collect(c)
	if err != nil {
		storeErr(c, err, "Failed to read data for backup")
		return
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to serialize backup")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to encrypt backup")
		return
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to create backup directory")
		return
	}

	id := uuid.New().String()
	filename := fmt.Sprintf("backup-%s-%s.bin", time.Now().Format("20060102"), id)
	path := filepath.Join(h.Dir, filename)

	if err := os.WriteFile(path, enc, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to write backup file")
		return
	}

	backup := models.Backup{
		ID:        id,
		Filename:  filename,
		SizeBytes: int64(len(enc)),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(path)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to record backup")
		return
	}

	util.Success(c, util.Response{"backup": backup})
}

// List returns the recorded backups, newest first.
func (h *BackupHandler) List(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to load backups")
		return
	}
	util.Success(c, util.Response{"backups": list})
}

func (h *BackupHandler) byID(c *gin.Context) (*models.Backup, bool) {
	id := c.Param("id")
	var backup models.Backup
	if err := h.DB.Where("id = ?", id).First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to load backup")
		}
		return nil, false
	}
	return &backup, true
}

// Download streams the encrypted snapshot file.
func (h *BackupHandler) Download(c *gin.Context) {
	backup, ok := h.byID(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.Filename))
	c.File(filepath.Join(h.Dir, backup.Filename))
}

// Delete removes the file first, then the record.
func (h *BackupHandler) Delete(c *gin.Context) {
	backup, ok := h.byID(c)
	if !ok {
		return
	}

	_ = os.Remove(filepath.Join(h.Dir, backup.Filename))
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to delete backup")
		return
	}

	util.Success(c, util.Response{"message": "Backup deleted"})
}

// Restore replaces the finance data with the snapshot's contents in
// one transaction. Sessions and users are untouched.
func (h *BackupHandler) Restore(c *gin.Context) {
	if !h.RestoreEnabled {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"Restore is only available when all data is stored locally")
		return
	}

	backup, ok := h.byID(c)
	if !ok {
		return
	}

	enc, err := os.ReadFile(filepath.Join(h.Dir, backup.Filename))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to read backup file")
		return
	}

	raw, err := util.DecryptAES(h.EncryptKey, enc)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to decrypt backup file")
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to parse backup data")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// Payments before commitments so the FK never dangles.
		for _, m := range []interface{}{
			&models.CommitmentPayment{}, &models.Commitment{},
			&models.Transaction{}, &models.Account{},
			&models.WishlistItem{}, &models.Debt{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		for i := range snap.Transactions {
			if err := tx.Create(&snap.Transactions[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Accounts {
			if err := tx.Create(&snap.Accounts[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Commitments {
			if err := tx.Create(&snap.Commitments[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Payments {
			snap.Payments[i].CommitmentName = ""
			if err := tx.Omit("Commitment").Create(&snap.Payments[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Wishlist {
			if err := tx.Create(&snap.Wishlist[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Debts {
			if err := tx.Create(&snap.Debts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to restore backup")
		return
	}

	util.Success(c, util.Response{
		"message":      "Backup restored",
		"transactions": len(snap.Transactions),
	})
}
