package clock

import "time"

// 現在時刻の取得元（usecaseに注入する）
type Clock interface {
	Now() time.Time
}

// Func は関数をそのままClockとして使う
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// 実時刻（UTC）
func NewSystem() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// テスト用：常に同じ時刻を返す
func NewFixed(t time.Time) Clock {
	at := t.UTC()
	return Func(func() time.Time { return at })
}
