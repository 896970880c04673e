// Package source opens attachment content referenced by path.
//
// Messages reference file attachments by location and the content is
// read only when a transport delivers the message. An Opener resolves a
// location to a reader:
//
//   - FileOpener reads from the local filesystem
//   - S3Opener reads s3://bucket/key objects from S3-compatible storage
//   - Mux routes by URL scheme, falling back to a default opener
//
// Example:
//
//	s3o, err := source.NewS3Opener(source.S3Config{
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Region:    "us-east-1",
//	})
//	if err != nil {
//		return err
//	}
//	opener := source.NewMux(source.FileOpener{}, source.Route("s3", s3o))
//	data, err := source.ReadAll(ctx, opener, "s3://invoices/2024/42.pdf")
package source
