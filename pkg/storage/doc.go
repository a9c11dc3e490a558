// Package storage writes generated documentation to its destination.
//
// # Overview
//
// A Sink stores documents by path. Two implementations exist:
//
//   - FileSystemSink: local files, parent directories created on demand
//   - S3Sink: objects in an S3 compatible bucket (AWS, MinIO)
//
// Both report a missing destination as ErrNotFound.
//
// # Change-Aware Writes
//
// Writer sits in front of a sink. It renders nothing itself; it compares the
// body of a freshly rendered document with the stored one and skips the
// write when they match, so timestamps in page headers do not cause churn:
//
//	writer := storage.NewWriter(sink,
//		storage.WithBody(docs.ManBody),
//		storage.WithNotifier(os.Stdout),
//	)
//	changed, err := writer.Write(ctx, "man/man3/abs.3", page)
//
// Every write prints "updated <path>" to the notifier. Long running
// processes can add WithDigestCache so unchanged pages are recognised
// without reading them back.
//
// # S3
//
//	sink, err := storage.NewS3Sink(ctx, storage.S3Config{
//		Bucket:       "docs",
//		Endpoint:     "http://localhost:9000",
//		UsePathStyle: true,
//	})
package storage
