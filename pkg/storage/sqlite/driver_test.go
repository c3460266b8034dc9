package sqlite_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/klmuthu/bedrock-distill/pkg/storage/sqlite"
)

var _ = Describe("Driver", func() {
	var (
		driver *sqlite.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		driver, err = sqlite.NewDriver(ctx, ":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	makeJob := func(arn string) *sqlite.JobRecord {
		return &sqlite.JobRecord{
			ARN:      arn,
			Kind:     sqlite.KindDistillation,
			Name:     "distill-squad",
			Status:   "InProgress",
			InputURI: "s3://bucket/input/train.jsonl",
		}
	}

	Describe("NewDriver", func() {
		It("creates a ledger with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			path := filepath.Join(tmpDir, "jobs.db")

			d, err := sqlite.NewDriver(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			defer d.Close()

			_, err = os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Put and Get", func() {
		It("stores and retrieves a job", func() {
			job := makeJob("arn:aws:bedrock:us-east-1:123:model-customization-job/abc")

			Expect(driver.Put(ctx, job)).To(Succeed())

			got, err := driver.Get(ctx, job.ARN)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Kind).To(Equal(sqlite.KindDistillation))
			Expect(got.Status).To(Equal("InProgress"))
			Expect(got.InputURI).To(Equal("s3://bucket/input/train.jsonl"))
			Expect(got.CreatedAt).NotTo(BeZero())
		})

		It("returns ErrNotFound for an untracked ARN", func() {
			_, err := driver.Get(ctx, "arn:unknown")
			Expect(err).To(HaveOccurred())

			var notFoundErr sqlite.ErrNotFound
			Expect(err).To(BeAssignableToTypeOf(notFoundErr))
		})

		It("upserts by ARN", func() {
			job := makeJob("arn:dup")
			Expect(driver.Put(ctx, job)).To(Succeed())

			job.Status = "Completed"
			job.OutputURI = "s3://bucket/output/"
			Expect(driver.Put(ctx, job)).To(Succeed())

			got, err := driver.Get(ctx, "arn:dup")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal("Completed"))
			Expect(got.OutputURI).To(Equal("s3://bucket/output/"))

			jobs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(jobs).To(HaveLen(1))
		})

		It("rejects nil jobs", func() {
			Expect(driver.Put(ctx, nil)).To(HaveOccurred())
		})

		It("rejects jobs without an ARN", func() {
			Expect(driver.Put(ctx, &sqlite.JobRecord{Kind: sqlite.KindProvisioning})).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("returns all tracked jobs", func() {
			Expect(driver.Put(ctx, makeJob("arn:a"))).To(Succeed())
			Expect(driver.Put(ctx, makeJob("arn:b"))).To(Succeed())

			jobs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(jobs).To(HaveLen(2))
		})

		It("returns an empty set for a fresh ledger", func() {
			jobs, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(jobs).To(BeEmpty())
		})
	})

	Describe("UpdateStatus", func() {
		It("records the latest observed state", func() {
			job := makeJob("arn:poll")
			Expect(driver.Put(ctx, job)).To(Succeed())

			Expect(driver.UpdateStatus(ctx, "arn:poll", "Completed", "s3://bucket/out/")).To(Succeed())

			got, err := driver.Get(ctx, "arn:poll")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal("Completed"))
			Expect(got.OutputURI).To(Equal("s3://bucket/out/"))
		})

		It("returns ErrNotFound for an untracked ARN", func() {
			err := driver.UpdateStatus(ctx, "arn:ghost", "Completed", "")
			var notFoundErr sqlite.ErrNotFound
			Expect(err).To(BeAssignableToTypeOf(notFoundErr))
		})
	})
})
