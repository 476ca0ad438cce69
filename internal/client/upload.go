package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// multipartBody frames a single file as a multipart form body. The returned
// content type carries the boundary and is passed through to the transport
// verbatim; multipart uploads never get a JSON content type.
func multipartBody(field, filename string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return nil, "", ErrInvalidRequest.Msg(err.Error())
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", ErrInvalidRequest.Msg(err.Error())
	}
	if err := w.Close(); err != nil {
		return nil, "", ErrInvalidRequest.Msg(err.Error())
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// UploadGradeImage submits a fruit photo to the AI grade endpoint.
func (c *Client) UploadGradeImage(ctx context.Context, filename string, data []byte) (*Response, error) {
	body, contentType, err := multipartBody("image", filename, data)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, Request{
		Method:      http.MethodPost,
		URL:         c.endpoints.Grade(),
		Body:        body,
		ContentType: contentType,
	})
}

// UpdateProfileImage replaces the account's profile image.
func (c *Client) UpdateProfileImage(ctx context.Context, filename string, data []byte) (*Response, error) {
	body, contentType, err := multipartBody("profileImage", filename, data)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, Request{
		Method:      http.MethodPut,
		URL:         c.endpoints.Me(),
		Body:        body,
		ContentType: contentType,
	})
}
