package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Controller
		"Opened %s (%d frames, %.2f fps, %.2fs)":   "%s を開きました (%d フレーム, %.2f fps, %.2f秒)",
		"Failed to open %s: %v":                    "%s を開けませんでした: %v",
		"Export already running, ignoring request": "エクスポート実行中のため要求を無視します",
		"Export failed: %v":                        "エクスポートに失敗しました: %v",

		// Decoder
		"Opened %s: %d frames at %.3f fps (%dx%d, %s)":  "%s を開きました: %d フレーム, %.3f fps (%dx%d, %s)",
		"MP4 probe failed, falling back to ffprobe: %v": "MP4の解析に失敗したため ffprobe を使用します: %v",

		// Sample stage
		"Sampling %d frames from %.3fs at %d fps": "%[2].3f秒から %[3]d fps で %[1]d フレームを抽出中",
		"Frame at %.3fs unavailable, skipping":    "%.3f秒のフレームがないためスキップします",
		"Decode failed at %.3fs, skipping: %v":    "%.3f秒のデコードに失敗したためスキップします: %v",
		"Failed to save sampled frame %d: %v":     "抽出フレーム %d の保存に失敗しました: %v",
		"Sampled %d of %d frames":                 "%[2]d フレーム中 %[1]d フレームを抽出しました",

		// Encode stage
		"Encoding %d frames at %dx%d, %d ms per frame": "%d フレームを %dx%d でエンコード中 (1フレーム %d ms)",
		"Animation encoded: %d bytes":                  "アニメーションのエンコード完了: %d バイト",

		// Orchestration
		"Exporting %.2fs-%.2fs to %s":                      "%.2f秒-%.2f秒を %s にエクスポート中",
		"Skipped %d of %d frames":                          "%[2]d フレーム中 %[1]d フレームをスキップしました",
		"No frames could be decoded in the selected range": "選択範囲のフレームをデコードできませんでした",
		"Failed to encode animation: %v":                   "アニメーションのエンコードに失敗しました: %v",
		"Failed to write output: %v":                       "出力の書き込みに失敗しました: %v",
		"Output saved to %s":                               "出力を %s に保存しました",
		"Failed to save export record: %v":                 "エクスポート記録の保存に失敗しました: %v",

		// Playback
		"Playing %.3fs-%.3fs at %.3f fps": "%.3f秒-%.3f秒を %.3f fps で再生中",
		"Playback stopped at %.3fs: %v":   "%.3f秒で再生を停止しました: %v",

		// Commands
		"Interrupted, export cancelled":   "中断されました。エクスポートを取り消しました",
		"Summary saved to %s":             "サマリーを %s に保存しました",
		"Failed to write summary: %v":     "サマリーの書き込みに失敗しました: %v",
		"Preview of frame %d saved to %s": "フレーム %d のプレビューを %s に保存しました",
	})
}
