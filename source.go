package mnist

import "github.com/opencontainers/go-digest"

// DefaultBaseURL is the mirror serving the gzip-compressed IDX archives.
// The original hosting at yann.lecun.com is no longer available.
const DefaultBaseURL = "https://raw.githubusercontent.com/fgnt/mnist/master"

// Role identifies one of the four MNIST dataset files.
type Role int

const (
	TrainImages Role = iota
	TrainLabels
	TestImages
	TestLabels
)

// Roles returns the four roles in load order.
func Roles() []Role {
	return []Role{TrainImages, TrainLabels, TestImages, TestLabels}
}

// String returns the role's logical name.
func (r Role) String() string {
	switch r {
	case TrainImages:
		return "train-images"
	case TrainLabels:
		return "train-labels"
	case TestImages:
		return "test-images"
	case TestLabels:
		return "test-labels"
	default:
		return "unknown"
	}
}

// Filename returns the archive filename the role is stored under, both on
// the mirror and in the local data directory.
func (r Role) Filename() string {
	return descriptors[r].filename
}

// isImages reports whether the role holds image data rather than labels.
func (r Role) isImages() bool {
	return r == TrainImages || r == TestImages
}

// descriptor ties a role to its archive filename and content digest.
type descriptor struct {
	filename string
	digest   digest.Digest
}

// descriptors is the fixed role table. The digests are the published
// SHA-256 sums of the canonical gzip archives.
var descriptors = map[Role]descriptor{
	TrainImages: {
		filename: "train-images-idx3-ubyte.gz",
		digest:   "sha256:440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609",
	},
	TrainLabels: {
		filename: "train-labels-idx1-ubyte.gz",
		digest:   "sha256:3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c",
	},
	TestImages: {
		filename: "t10k-images-idx3-ubyte.gz",
		digest:   "sha256:8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6",
	},
	TestLabels: {
		filename: "t10k-labels-idx1-ubyte.gz",
		digest:   "sha256:f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6",
	},
}
