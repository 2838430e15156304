package metrics

const commitHistoryQuery = `
query($owner: String!, $repo: String!, $first: Int!, $after: String) {
  repository(owner: $owner, name: $repo) {
    defaultBranchRef {
      target {
        ... on Commit {
          history(first: $first, after: $after) {
            edges {
              node {
                author {
                  user {
                    login
                  }
                }
              }
            }
            pageInfo {
              hasNextPage
              endCursor
            }
          }
        }
      }
    }
  }
}`

const issueCountsQuery = `
query($owner: String!, $repo: String!, $bugSample: Int!) {
  repository(owner: $owner, name: $repo) {
    issues {
      totalCount
    }
    closedIssues: issues(states: CLOSED) {
      totalCount
    }
    bugIssues: issues(first: $bugSample, labels: ["bug", "type: bug"]) {
      totalCount
    }
  }
}`

const rootTreeQuery = `
query($owner: String!, $repo: String!) {
  repository(owner: $owner, name: $repo) {
    object(expression: "HEAD:") {
      ... on Tree {
        entries {
          name
          type
          object {
            ... on Blob {
              text
            }
            ... on Tree {
              entries {
                name
                type
                object {
                  ... on Blob {
                    text
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

const pullRequestsQuery = `
query($owner: String!, $repo: String!, $first: Int!, $after: String) {
  repository(owner: $owner, name: $repo) {
    pullRequests(first: $first, after: $after, orderBy: {field: CREATED_AT, direction: ASC}) {
      edges {
        node {
          createdAt
          author {
            login
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

const diskUsageQuery = `
query($owner: String!, $repo: String!) {
  repository(owner: $owner, name: $repo) {
    diskUsage
  }
}`

const closedIssuesQuery = `
query($owner: String!, $repo: String!, $first: Int!) {
  repository(owner: $owner, name: $repo) {
    issues(first: $first, states: CLOSED) {
      edges {
        node {
          createdAt
          comments(first: 1) {
            edges {
              node {
                createdAt
              }
            }
          }
        }
      }
    }
  }
}`
