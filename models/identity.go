// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
)

// ErrIncompleteIdentity is returned when an identity lacks one of its three
// parts.
var ErrIncompleteIdentity = errors.New("identity requires app id, app secret and app password")

// Identity authenticates the process to the settings API and unlocks the
// bundle locally.
//
// AppID and AppSecret are sent to the identity authority; AppPassword never
// leaves the process and only seeds the unlock key.
type Identity struct {
	AppID       string
	AppSecret   string
	AppPassword string
}

// Validate returns [ErrIncompleteIdentity] if any part is blank.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.AppID) == "" ||
		strings.TrimSpace(i.AppSecret) == "" ||
		i.AppPassword == "" {
		return ErrIncompleteIdentity
	}
	return nil
}

// String renders the identity for logs with both secrets redacted.
func (i Identity) String() string {
	return "AppId=" + i.AppID + ";AppSecret=***;AppPassword=***"
}

// ParseConnectionString builds an [Identity] from a string of the form
//
//	AppId=<id>;AppSecret=<secret>;AppPassword=<password>
//
// Keys are case-insensitive, surrounding whitespace is ignored, and chunks
// that are not a single key=value pair are skipped. The result is validated
// before it is returned.
func ParseConnectionString(s string) (Identity, error) {
	var id Identity

	for _, chunk := range strings.Split(s, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || strings.Count(chunk, "=") != 1 {
			continue
		}

		key, value, _ := strings.Cut(chunk, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}

		switch strings.ToLower(key) {
		case "appid":
			id.AppID = value
		case "appsecret":
			id.AppSecret = value
		case "apppassword":
			id.AppPassword = value
		}
	}

	return id, id.Validate()
}
