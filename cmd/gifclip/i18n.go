// Package main provides localization for the gifclip CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI, editor and summary text.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":  "出力",
		"Range":   "範囲",
		"Caption": "キャプション",
		"Debug":   "デバッグ",
		"Logging": "ログ",

		// Root command
		"Trim a video and export a captioned looping GIF": "動画を切り出してキャプション付きのループGIFを作成",
		"YAML configuration file":                         "YAML設定ファイル",
		"Log level (debug, info, warn, error)":            "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                         "全てのログ出力を抑制",
		"Error: %v":                                       "エラー: %v",
		"A video file argument is required":               "動画ファイルの引数が必要です",

		// Version command
		"Show version information": "バージョン情報を表示",
		"gifclip version %s":       "gifclip バージョン %s",

		// Export command
		"Export a range of a video as a captioned GIF":       "動画の範囲をキャプション付きGIFとしてエクスポート",
		"Output GIF path (default: video name with .gif)":    "出力GIFのパス（デフォルト: 動画名.gif）",
		"Range start (H:MM:SS, MM:SS or seconds)":            "範囲の開始（H:MM:SS, MM:SS または秒）",
		"Range end (default: 5 seconds or the video length)": "範囲の終了（デフォルト: 5秒または動画の長さ）",
		"Write an export summary to file (Markdown format)":  "エクスポートのサマリーをファイルに出力（Markdown形式）",
		"Save sampled frames and an export record":           "抽出フレームとエクスポート記録を保存",
		"Directory for debug output":                         "デバッグ出力のディレクトリ",
		"Exporting":                                          "エクスポート中",

		// Caption flags
		"Caption text (empty for no caption)":                               "キャプションの文字列（空ならキャプションなし）",
		"Caption font size in pixels (12-72)":                               "キャプションの文字サイズ（ピクセル, 12-72）",
		"Caption vertical position as a fraction of the height (0.05-0.95)": "キャプションの縦位置（高さに対する割合, 0.05-0.95）",
		"Path to a TrueType font":                                           "TrueTypeフォントのパス",

		// Preview command
		"Write the captioned frame at a given time as an image":                       "指定時刻のキャプション付きフレームを画像で出力",
		"Output image path, PNG or JPEG by extension (default: video name with .png)": "出力画像のパス。拡張子でPNGかJPEGを選択（デフォルト: 動画名.png）",
		"Frame time (H:MM:SS, MM:SS or seconds)":                                      "フレームの時刻（H:MM:SS, MM:SS または秒）",
		"Keep the source resolution instead of the preview size":                      "プレビューサイズではなく元の解像度で出力",

		// Info command
		"Print video metadata": "動画のメタデータを表示",
		"File":                 "ファイル",
		"Container":            "コンテナ",
		"Resolution":           "解像度",
		"Frame Rate":           "フレームレート",
		"Frames":               "フレーム数",
		"Length":               "長さ",

		// Edit command
		"Open the interactive editor":              "対話型エディタを開く",
		"Write logs to file while the editor runs": "エディタ実行中のログをファイルに出力",
		"Choose a video":                           "動画を選択",
		"MP4, AVI, MOV or MKV":                     "MP4, AVI, MOV, MKV",
		"No video selected":                        "動画が選択されていません",

		// Editor
		"Start":                    "開始",
		"End":                      "終了",
		"Step":                     "ステップ",
		"Size":                     "サイズ",
		"Position":                 "位置",
		"Duration: %.2fs":          "長さ: %.2f秒",
		"(export disabled)":        "（エクスポート不可）",
		"(none)":                   "（なし）",
		"playing":                  "再生中",
		"exporting":                "エクスポート中",
		"Exporting to %s":          "%s にエクスポート中",
		"Caption: ":                "キャプション: ",
		"Start: ":                  "開始: ",
		"End: ":                    "終了: ",
		"Save as: ":                "保存先: ",
		"Invalid time: %v":         "時刻が不正です: %v",
		"Preview failed: %v":       "プレビューに失敗しました: %v",
		"Playback stopped: %v":     "再生が停止しました: %v",
		"Saved %s (%d frames, %s)": "%s を保存しました（%d フレーム, %s）",
		"Export cancelled":         "エクスポートを取り消しました",
		"Cancelling export...":     "エクスポートを取り消し中...",

		"Selection is too short to export":    "選択範囲が短すぎてエクスポートできません",
		"Selection is longer than 10 seconds": "選択範囲が10秒を超えています",
		"An export is in progress":            "エクスポート実行中です",
		"No video open":                       "動画が開かれていません",

		"c cancel export · q quit · ? help":                                            "c 取り消し · q 終了 · ? ヘルプ",
		"space play · ←/→ start · shift+←/→ end · t text · x export · q quit · ? help": "space 再生 · ←/→ 開始 · shift+←/→ 終了 · t 文字 · x 書き出し · q 終了 · ? ヘルプ",

		// Editor help
		"Keys":                       "キー操作",
		"Play or stop the selection": "選択範囲を再生・停止",
		"Move start by one step":     "開始を1ステップ移動",
		"Move end by one step":       "終了を1ステップ移動",
		"Change step size":           "ステップ幅を変更",
		"Type start / end time":      "開始・終了時刻を入力",
		"Edit caption text":          "キャプションを編集",
		"Caption size":               "キャプションのサイズ",
		"Caption position":           "キャプションの位置",
		"Export GIF":                 "GIFをエクスポート",
		"Cancel export":              "エクスポートを取り消し",
		"Quit":                       "終了",
		"Press any key to close":     "いずれかのキーで閉じる",

		// Summary content
		"Export Summary": "エクスポートサマリー",
		"Source":         "入力",
		"Selection":      "選択範囲",
		"Duration":       "長さ",
		"Text":           "文字列",
		"Font Size":      "文字サイズ",
		"Skipped Frames": "スキップしたフレーム",
		"Frame Delay":    "フレーム間隔",
		"Loop Length":    "ループの長さ",
		"File Size":      "ファイルサイズ",
		"Export Time":    "処理時間",
		"Generated at":   "生成日時",
		"Item":           "項目",
		"Value":          "値",
		"frames":         "フレーム",
	})
}
