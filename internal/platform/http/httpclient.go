package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は検出サイドカー（YOLO推論サーバ）呼び出し用のHTTPクライアントを作成します。
//
// 推論リクエストは画像1枚あたり数百ミリ秒〜数秒かかるため、
// タイムアウトは呼び出し元（yolo.Config.Timeout）から渡します。
// サイドカーとは同一ネットワーク内で接続を使い回すので、
// Keep-AliveとアイドルプールをTransportで明示的に設定しています。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（推論待ちとは別に短く切る）
//   - Dialer.KeepAlive: 再利用可能なTCP接続の維持期間
//   - MaxIdleConns / IdleConnTimeout: 検出リクエストごとの再接続を避けるためのプール
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: 推論リクエスト全体のタイムアウト
//
// 注意: http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
