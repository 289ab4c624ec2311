// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package configur keeps an application's settings in sync with the configur
// settings service.
//
// Settings travel end-to-end encrypted: the service only ever sees a sealed
// bundle, and the bundle is opened in-process with the application password,
// which never leaves the host. A [Provider] loads the settings once, keeps
// them fresh with a periodic refresh and a server push, and falls back to the
// last bundle cached on disk when the service cannot be reached.
//
//	p, err := configur.New(configur.Options{
//		ConnectionString: os.Getenv("CONFIGUR_CONNECTION_STRING"),
//		CacheEnabled:     true,
//	})
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	p.Load(ctx)
//	dsn, ok := p.Get("Database:ConnectionString")
//
// Refresh failures never reach the caller. A failed refresh leaves the
// previous settings in place; [Provider.Status] reports what happened.
package configur
