package io

import (
	"regexp"
	"strconv"

	"github.com/matzehuels/clusterview/pkg/errors"
)

var (
	clusterIDPattern     = regexp.MustCompile(`(c\d+)`)
	clusterLengthPattern = regexp.MustCompile(`/(\d+)$`)
)

// ClusterName is a parsed read-cluster name such as "c225/f26p50/6117".
type ClusterName struct {
	ID     string // "c225"
	Length int    // 6117
}

// ParseClusterName extracts the cluster ID and length token from name.
func ParseClusterName(name string) (ClusterName, error) {
	id, err := ClusterID(name)
	if err != nil {
		return ClusterName{}, err
	}
	n, err := ClusterLength(name)
	if err != nil {
		return ClusterName{}, err
	}
	return ClusterName{ID: id, Length: n}, nil
}

// ClusterID returns the first "c<digits>" token of name.
func ClusterID(name string) (string, error) {
	m := clusterIDPattern.FindStringSubmatch(name)
	if m == nil {
		return "", errors.DataIntegrity("cannot find cluster ID in %s", name)
	}
	return m[1], nil
}

// ClusterLength returns the trailing "/<digits>" length token of name.
func ClusterLength(name string) (int, error) {
	m := clusterLengthPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, errors.DataIntegrity("no length in name: %s", name)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeDataIntegrity, err, "length in name: %s", name)
	}
	return n, nil
}
