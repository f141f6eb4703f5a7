// Package api defines wire-format types and converters for the HTTP API.
//
// # Key Types
//
// DaemonStatus: running state, directory and lock paths, channel switches,
// transport configuration and directory record counts.
//
// NotifyResponse is returns.Result itself; its camelCase JSON tags are the
// contract callers already rely on.
//
// # Request decoding
//
// DecodeNotifyEvent accepts either {"data": {...}} or the bare event object
// and casts it with returns.ParseEvent. Numbers are decoded as json.Number so
// large ids survive intact.
package api
