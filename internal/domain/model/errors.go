package model

import "errors"

var (
	// DBに接続できない、またはcommitできない
	ErrStoreUnavailable = errors.New("store unavailable")

	// Start前（またはStop後）にPublishした。起動順のバグ
	ErrPublisherNotReady = errors.New("publisher not ready")

	// brokerが拒否した、またはタイムアウト
	ErrPublishFailed = errors.New("publish failed")
)

// 入力が不正（必須項目が空など）
var ErrInvalidInput = errors.New("invalid input")
