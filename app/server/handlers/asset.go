package handlers

import (
	"crowdfunding-backend/app/server/constants"
	"crowdfunding-backend/app/server/middlewares"
	"crowdfunding-backend/app/server/models"
	"crowdfunding-backend/app/server/types"
	"errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"io"
	"net/http"
	"path/filepath"
)

func (a *App) AssetUpload(c echo.Context) error {
	rctx := c.Request().Context()
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.er(http.StatusUnauthorized, "invalid or missing token")
	}

	// 取出上传的文件
	fileHeader, err := c.FormFile(constants.UploadFormField)
	if err != nil {
		a.l.Debug("failed to get form file", zap.Error(err))
		return a.erFields(http.StatusBadRequest, "missing required fields", constants.UploadFormField)
	}
	if fileHeader.Size > constants.UploadMaxSize {
		return a.er(http.StatusBadRequest, "file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open form file", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}
	defer file.Close()

	// 多读一个字节，用来判断是否超出大小
	content, err := io.ReadAll(io.LimitReader(file, constants.UploadMaxSize+1))
	if err != nil {
		a.l.Error("failed to read file content", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}
	if len(content) > constants.UploadMaxSize {
		return a.er(http.StatusBadRequest, "file too large")
	}
	if len(content) == 0 {
		return a.er(http.StatusBadRequest, "file is empty")
	}

	// 以文件内容判断类型，不信任客户端提供的 Content-Type
	contentType := http.DetectContentType(content)
	if !constants.UploadAllowedTypes[contentType] {
		return a.er(http.StatusBadRequest, "unsupported file type")
	}

	asset := models.Asset{
		Key:         uuid.New(),
		UserID:      user.ID,
		Filename:    filepath.Base(fileHeader.Filename),
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}
	if err = a.assets.Create(rctx, &asset); err != nil {
		a.l.Error("failed to create asset", zap.Uint("userID", user.ID), zap.String("filename", asset.Filename), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	return a.ok(c, http.StatusCreated, &types.AssetInfo{
		Key: asset.Key.String(),
		URL: constants.UploadURLPrefix + asset.Key.String(),
	})
}

func (a *App) AssetDownload(c echo.Context) error {
	key, err := uuid.Parse(c.Param("key"))
	if err != nil {
		return a.er(http.StatusNotFound, "file not found")
	}

	asset, err := a.assets.FindByKey(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(http.StatusNotFound, "file not found")
		}
		a.l.Error("failed to get asset", zap.String("key", key.String()), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// key 对应的内容不会变化
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, asset.ContentType, asset.Content)
}
