// Package minio stores dataset blobs in MinIO or any other S3-compatible
// service through the MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "datasets", "mnist/")
//	ds, err := jdx.ReadFromStore(ctx, store, "train.jdx")
//
// It needs no AWS SDK and suits on-premises deployments.
package minio
